package scan

import (
	"context"

	"github.com/dothezz/foldersync/pkg/contextutil"
	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filesystem"
	"golang.org/x/sync/errgroup"
)

// ErrorDecider is consulted for every traversal error on either side (spec
// §7). isDir distinguishes a directory-read failure from a single-item
// stat failure. Returning filesystem.ErrorRetry asks the traversal to try
// the failed operation again; anything else records the error and moves
// on.
type ErrorDecider func(relativePath string, err error, isDir bool) filesystem.ErrorDecision

// RetryThenIgnore returns an ErrorDecider that retries each failure up to
// attempts times before giving up and recording it (spec §7 "bounded
// retry, then ignore").
func RetryThenIgnore(attempts int) ErrorDecider {
	counts := make(map[string]int)
	return func(relativePath string, _ error, isDir bool) filesystem.ErrorDecision {
		key := relativePath
		if isDir {
			key = "d:" + key
		} else {
			key = "f:" + key
		}
		counts[key]++
		if counts[key] <= attempts {
			return filesystem.ErrorRetry
		}
		return filesystem.ErrorIgnore
	}
}

// Report summarizes one Scan call: the merged base-pair tree plus any
// traversal errors the ErrorDecider chose to ignore rather than resolve
// (spec §7 "failed_dir_reads" / "failed_item_reads").
type Report struct {
	FailedDirReads  []FailedRead
	FailedItemReads []FailedRead
}

// Scan performs both sides' traversals concurrently, merges the resulting
// containers into base's paired tree, registers every pair in table, and
// categorizes every file and symlink pair (spec §5: "the merged tree is
// constructed only after the two sides of a base-pair have both completed
// traversal"). base's LeftPath/RightPath, Filter, CompareBy, and related
// fields must already be set; its Files/Symlinks/Folders are replaced.
func Scan(ctx context.Context, base *core.BasePair, table *core.Table[any], contentEqual core.ContentComparator) (*Report, error) {
	group, ctx := errgroup.WithContext(ctx)

	var leftVisitor, rightVisitor *buildingVisitor
	decide := RetryThenIgnore(2)

	if base.LeftAvailable {
		group.Go(func() error {
			leftVisitor = newBuildingVisitor(base.Filter, cancellableDecider(ctx, decide), core.Left)
			return filesystem.Traverse(base.LeftPath, base.SymlinkPolicy, leftVisitor)
		})
	}
	if base.RightAvailable {
		group.Go(func() error {
			rightVisitor = newBuildingVisitor(base.Filter, cancellableDecider(ctx, decide), core.Right)
			return filesystem.Traverse(base.RightPath, base.SymlinkPolicy, rightVisitor)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var leftRoot, rightRoot *container
	if leftVisitor != nil {
		leftRoot = leftVisitor.root
	}
	if rightVisitor != nil {
		rightRoot = rightVisitor.root
	}

	files, symlinks, folders := mergeContainers(leftRoot, rightRoot, base, table, contentEqual)
	base.Files = files
	base.Symlinks = symlinks
	base.Folders = folders

	report := &Report{}
	if leftVisitor != nil {
		report.FailedDirReads = append(report.FailedDirReads, leftVisitor.failedDirReads...)
		report.FailedItemReads = append(report.FailedItemReads, leftVisitor.failedItemReads...)
	}
	if rightVisitor != nil {
		report.FailedDirReads = append(report.FailedDirReads, rightVisitor.failedDirReads...)
		report.FailedItemReads = append(report.FailedItemReads, rightVisitor.failedItemReads...)
	}

	return report, nil
}

// cancellableDecider wraps decide so that a canceled context short-circuits
// further retries, satisfying spec §5's mid-scan cancellation requirement
// without a separate polling goroutine: every error callback already passes
// through here.
func cancellableDecider(ctx context.Context, decide ErrorDecider) ErrorDecider {
	return func(relativePath string, err error, isDir bool) filesystem.ErrorDecision {
		if contextutil.IsCancelled(ctx) {
			return filesystem.ErrorIgnore
		}
		return decide(relativePath, err, isDir)
	}
}
