package scan

import (
	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filesystem"
)

// mergeContainers pairs up two raw, single-sided containers into the
// base-pair's Files/Symlinks/Folders slices, registering every produced
// pair in table and assigning its Category (spec §4.3 "the merge step pairs
// by name, preserving left's order first, then appending right-only
// names").
func mergeContainers(left, right *container, base *core.BasePair, table *core.Table[any], contentEqual core.ContentComparator) ([]*core.FilePair, []*core.SymlinkPair, []*core.FolderPair) {
	return mergeFiles(left, right, base, table, contentEqual, ""),
		mergeSymlinks(left, right, base, table),
		mergeFolders(left, right, base, table, contentEqual, "", nil)
}

func emptyContainer() *container { return &container{} }

func safeContainer(c *container) *container {
	if c == nil {
		return emptyContainer()
	}
	return c
}

// orderedUnion returns the union of leftNames and rightNames, preserving
// left's order first and then appending any right-only names in right's
// order (spec §4.3).
func orderedUnion(leftNames, rightNames []string) []string {
	seen := make(map[string]bool, len(leftNames)+len(rightNames))
	union := make([]string, 0, len(leftNames)+len(rightNames))
	for _, name := range leftNames {
		if !seen[name] {
			seen[name] = true
			union = append(union, name)
		}
	}
	for _, name := range rightNames {
		if !seen[name] {
			seen[name] = true
			union = append(union, name)
		}
	}
	return union
}

func mergeFiles(left, right *container, base *core.BasePair, table *core.Table[any], contentEqual core.ContentComparator, relativePrefix string) []*core.FilePair {
	left, right = safeContainer(left), safeContainer(right)

	leftByName := make(map[string]fileEntry, len(left.files))
	var leftNames []string
	for _, entry := range left.files {
		leftByName[entry.name] = entry
		leftNames = append(leftNames, entry.name)
	}
	rightByName := make(map[string]fileEntry, len(right.files))
	var rightNames []string
	for _, entry := range right.files {
		rightByName[entry.name] = entry
		rightNames = append(rightNames, entry.name)
	}

	var pairs []*core.FilePair
	for _, name := range orderedUnion(leftNames, rightNames) {
		leftEntry, onLeft := leftByName[name]
		rightEntry, onRight := rightByName[name]

		pair := &core.FilePair{PairState: core.PairState{Active: true}}
		if onLeft {
			pair.LeftName = leftEntry.name
			pair.Left = leftEntry.descriptor
		}
		if onRight {
			pair.RightName = rightEntry.name
			pair.Right = rightEntry.descriptor
		}

		switch {
		case onLeft && onRight:
			leftPath := filesystem.AppendRelative(base.LeftPath, filesystem.PathJoin(relativePrefix, leftEntry.name))
			rightPath := filesystem.AppendRelative(base.RightPath, filesystem.PathJoin(relativePrefix, rightEntry.name))
			category, _ := core.CategorizeFiles(
				leftEntry.descriptor, rightEntry.descriptor,
				leftEntry.name, rightEntry.name,
				base.CompareBy, base.ToleranceSeconds, base.IgnoredShiftMinutes,
				contentEqual, leftPath, rightPath,
			)
			pair.Category = category
		case onLeft:
			pair.Category = core.CategoryLeftOnly
		case onRight:
			pair.Category = core.CategoryRightOnly
		}

		pair.ID = table.Register(pair)
		pairs = append(pairs, pair)
	}
	return pairs
}

func mergeSymlinks(left, right *container, base *core.BasePair, table *core.Table[any]) []*core.SymlinkPair {
	left, right = safeContainer(left), safeContainer(right)

	leftByName := make(map[string]symlinkEntry, len(left.symlinks))
	var leftNames []string
	for _, entry := range left.symlinks {
		leftByName[entry.name] = entry
		leftNames = append(leftNames, entry.name)
	}
	rightByName := make(map[string]symlinkEntry, len(right.symlinks))
	var rightNames []string
	for _, entry := range right.symlinks {
		rightByName[entry.name] = entry
		rightNames = append(rightNames, entry.name)
	}

	var pairs []*core.SymlinkPair
	for _, name := range orderedUnion(leftNames, rightNames) {
		leftEntry, onLeft := leftByName[name]
		rightEntry, onRight := rightByName[name]

		pair := &core.SymlinkPair{PairState: core.PairState{Active: true}}
		if onLeft {
			pair.LeftName = leftEntry.name
			pair.Left = leftEntry.descriptor
		}
		if onRight {
			pair.RightName = rightEntry.name
			pair.Right = rightEntry.descriptor
		}

		switch {
		case onLeft && onRight:
			pair.Category = core.CategorizeSymlinks(leftEntry.descriptor, rightEntry.descriptor, leftEntry.name, rightEntry.name, base.ToleranceSeconds, base.IgnoredShiftMinutes)
		case onLeft:
			pair.Category = core.CategoryLeftOnly
		case onRight:
			pair.Category = core.CategoryRightOnly
		}

		pair.ID = table.Register(pair)
		pairs = append(pairs, pair)
	}
	return pairs
}

func mergeFolders(left, right *container, base *core.BasePair, table *core.Table[any], contentEqual core.ContentComparator, relativePrefix string, parent *core.FolderPair) []*core.FolderPair {
	left, right = safeContainer(left), safeContainer(right)

	leftByName := make(map[string]folderEntry, len(left.folders))
	var leftNames []string
	for _, entry := range left.folders {
		leftByName[entry.name] = entry
		leftNames = append(leftNames, entry.name)
	}
	rightByName := make(map[string]folderEntry, len(right.folders))
	var rightNames []string
	for _, entry := range right.folders {
		rightByName[entry.name] = entry
		rightNames = append(rightNames, entry.name)
	}

	var pairs []*core.FolderPair
	for _, name := range orderedUnion(leftNames, rightNames) {
		leftEntry, onLeft := leftByName[name]
		rightEntry, onRight := rightByName[name]

		pair := &core.FolderPair{PairState: core.PairState{Active: true}, Parent: parent}
		var leftChildren, rightChildren *container
		if onLeft {
			pair.LeftName = leftEntry.name
			pair.Left = leftEntry.descriptor
			leftChildren = leftEntry.children
		}
		if onRight {
			pair.RightName = rightEntry.name
			pair.Right = rightEntry.descriptor
			rightChildren = rightEntry.children
		}

		switch {
		case onLeft && onRight:
			pair.Category = core.CategorizeFolders(leftEntry.name, rightEntry.name)
		case onLeft:
			pair.Category = core.CategoryLeftOnly
		case onRight:
			pair.Category = core.CategoryRightOnly
		}

		pair.ID = table.Register(pair)

		childRelative := filesystem.PathJoin(relativePrefix, name)
		pair.Files = mergeFiles(leftChildren, rightChildren, base, table, contentEqual, childRelative)
		pair.Symlinks = mergeSymlinks(leftChildren, rightChildren, base, table)
		pair.Folders = mergeFolders(leftChildren, rightChildren, base, table, contentEqual, childRelative, pair)

		pairs = append(pairs, pair)
	}
	return pairs
}
