package scan

import (
	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filesystem"
	"github.com/dothezz/foldersync/pkg/filter"
)

// fileEntry is one file discovered by a single-sided traversal.
type fileEntry struct {
	name       string
	descriptor filesystem.FileDescriptor
}

// symlinkEntry is one symlink discovered by a single-sided traversal.
type symlinkEntry struct {
	name       string
	descriptor filesystem.SymlinkDescriptor
}

// folderEntry is one directory discovered by a single-sided traversal,
// together with its own container of children.
type folderEntry struct {
	name       string
	descriptor filesystem.FolderDescriptor
	children   *container
}

// container is the raw, unpaired output of one side's traversal (spec
// §4.3: "a folder container is the raw output: recursive, unpaired"). Its
// three slices preserve the deterministic, sorted-by-name order Traverse
// produces.
type container struct {
	files    []fileEntry
	symlinks []symlinkEntry
	folders  []folderEntry
}

// FailedRead records a traversal error the driver chose to ignore rather
// than retry (spec §7).
type FailedRead struct {
	RelativePath string
	Err          error
}

// buildingVisitor implements filesystem.Visitor, applying a hard filter
// while assembling a container (spec §4.2: "the hard filter is applied
// *during* traversal for pruning").
type buildingVisitor struct {
	hardFilter filter.HardFilter
	decide     ErrorDecider
	side       core.Side

	root  *container
	nodes map[string]*container

	failedDirReads  []FailedRead
	failedItemReads []FailedRead
}

func newBuildingVisitor(hardFilter filter.HardFilter, decide ErrorDecider, side core.Side) *buildingVisitor {
	root := &container{}
	return &buildingVisitor{
		hardFilter: hardFilter,
		decide:     decide,
		side:       side,
		root:       root,
		nodes:      map[string]*container{"": root},
	}
}

func (v *buildingVisitor) parent(relative string) *container {
	dir := filesystem.PathDir(relative)
	if node, ok := v.nodes[dir]; ok {
		return node
	}
	return v.root
}

func (v *buildingVisitor) OnFile(relative string, descriptor filesystem.FileDescriptor) error {
	if !v.hardFilter.Matches(relative, false) {
		return nil
	}
	v.parent(relative).files = append(v.parent(relative).files, fileEntry{
		name:       filesystem.PathBase(relative),
		descriptor: descriptor,
	})
	return nil
}

func (v *buildingVisitor) OnSymlink(relative string, descriptor filesystem.SymlinkDescriptor) error {
	if !v.hardFilter.Matches(relative, false) {
		return nil
	}
	v.parent(relative).symlinks = append(v.parent(relative).symlinks, symlinkEntry{
		name:       filesystem.PathBase(relative),
		descriptor: descriptor,
	})
	return nil
}

func (v *buildingVisitor) OnDirectory(relative string, descriptor filesystem.FolderDescriptor) (bool, error) {
	if !v.hardFilter.DirectoryMightContainMatch(relative) {
		return false, nil
	}

	node := &container{}
	v.nodes[relative] = node
	v.parent(relative).folders = append(v.parent(relative).folders, folderEntry{
		name:       filesystem.PathBase(relative),
		descriptor: descriptor,
		children:   node,
	})
	return true, nil
}

func (v *buildingVisitor) OnDirError(relative string, err error) filesystem.ErrorDecision {
	decision := v.decide(relative, err, true)
	if decision == filesystem.ErrorIgnore {
		v.failedDirReads = append(v.failedDirReads, FailedRead{RelativePath: relative, Err: err})
	}
	return decision
}

func (v *buildingVisitor) OnItemError(relative string, err error) filesystem.ErrorDecision {
	decision := v.decide(relative, err, false)
	if decision == filesystem.ErrorIgnore {
		v.failedItemReads = append(v.failedItemReads, FailedRead{RelativePath: relative, Err: err})
	}
	return decision
}
