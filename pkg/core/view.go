package core

import "sort"

// Row is a flattened, display-ready representation of one paired item at
// a known depth, produced by Flatten (spec component I: "filtered, sorted,
// collapsible view of the paired tree").
type Row struct {
	ID          PairID
	Name        string
	Depth       int
	Category    Category
	Operation   Operation
	Active      bool
	HasChildren bool
}

// SortKey selects the column Flatten orders siblings by. Folders always
// sort ahead of files and symlinks within a SortKey, matching the
// directory-first convention of the source tree widget this view feeds.
type SortKey uint8

const (
	// SortByName orders siblings by their canonical short name.
	SortByName SortKey = iota
	// SortByCategory orders siblings by category, then name.
	SortByCategory
	// SortByOperation orders siblings by resolved operation, then name.
	SortByOperation
)

// Flatten produces a depth-first row list for display. collapsed holds the
// set of folder ids whose children should be omitted (a collapsed folder
// still contributes its own row); when activeOnly is true, rows for
// inactive pairs (soft-filtered-out) are omitted entirely, including from
// the HasChildren count of their parent.
func Flatten(base *BasePair, key SortKey, collapsed map[PairID]bool, activeOnly bool) []Row {
	var rows []Row

	files := make([]*FilePair, len(base.Files))
	copy(files, base.Files)
	symlinks := make([]*SymlinkPair, len(base.Symlinks))
	copy(symlinks, base.Symlinks)
	folders := make([]*FolderPair, len(base.Folders))
	copy(folders, base.Folders)

	sortFolders(folders, key)
	sortFiles(files, key)
	sortSymlinks(symlinks, key)

	for _, folder := range folders {
		appendFolderRows(&rows, folder, 0, key, collapsed, activeOnly)
	}
	for _, file := range files {
		appendLeafRow(&rows, file.PairState, 0, activeOnly)
	}
	for _, symlink := range symlinks {
		appendLeafRow(&rows, symlink.PairState, 0, activeOnly)
	}

	return rows
}

func appendLeafRow(rows *[]Row, state PairState, depth int, activeOnly bool) {
	if activeOnly && !state.Active {
		return
	}
	*rows = append(*rows, Row{
		ID:        state.ID,
		Name:      canonicalName(state),
		Depth:     depth,
		Category:  state.Category,
		Operation: state.Operation,
		Active:    state.Active,
	})
}

func appendFolderRows(rows *[]Row, folder *FolderPair, depth int, key SortKey, collapsed map[PairID]bool, activeOnly bool) {
	if activeOnly && !folder.Active {
		return
	}

	hasChildren := len(folder.Files) > 0 || len(folder.Symlinks) > 0 || len(folder.Folders) > 0
	if activeOnly {
		hasChildren = false
		for _, file := range folder.Files {
			hasChildren = hasChildren || file.Active
		}
		for _, symlink := range folder.Symlinks {
			hasChildren = hasChildren || symlink.Active
		}
		for _, child := range folder.Folders {
			hasChildren = hasChildren || child.Active
		}
	}
	*rows = append(*rows, Row{
		ID:          folder.ID,
		Name:        canonicalName(folder.PairState),
		Depth:       depth,
		Category:    folder.Category,
		Operation:   folder.Operation,
		Active:      folder.Active,
		HasChildren: hasChildren,
	})

	if collapsed[folder.ID] {
		return
	}

	children := make([]*FolderPair, len(folder.Folders))
	copy(children, folder.Folders)
	files := make([]*FilePair, len(folder.Files))
	copy(files, folder.Files)
	symlinks := make([]*SymlinkPair, len(folder.Symlinks))
	copy(symlinks, folder.Symlinks)

	sortFolders(children, key)
	sortFiles(files, key)
	sortSymlinks(symlinks, key)

	for _, child := range children {
		appendFolderRows(rows, child, depth+1, key, collapsed, activeOnly)
	}
	for _, file := range files {
		appendLeafRow(rows, file.PairState, depth+1, activeOnly)
	}
	for _, symlink := range symlinks {
		appendLeafRow(rows, symlink.PairState, depth+1, activeOnly)
	}
}

func lessByKey(key SortKey, aName string, aCategory Category, aOperation Operation, bName string, bCategory Category, bOperation Operation) bool {
	switch key {
	case SortByCategory:
		if aCategory != bCategory {
			return aCategory < bCategory
		}
	case SortByOperation:
		if aOperation != bOperation {
			return aOperation < bOperation
		}
	}
	return aName < bName
}

// sortableFolderList implements sort.Interface for folder-pair slices,
// grounded on the source's sortableConflictList/sortableProblemList
// pattern of a private named-slice type plus a package-level sort helper.
type sortableFolderList struct {
	folders []*FolderPair
	key     SortKey
}

func (l sortableFolderList) Len() int { return len(l.folders) }
func (l sortableFolderList) Less(i, j int) bool {
	a, b := l.folders[i], l.folders[j]
	return lessByKey(l.key, canonicalName(a.PairState), a.Category, a.Operation, canonicalName(b.PairState), b.Category, b.Operation)
}
func (l sortableFolderList) Swap(i, j int) { l.folders[i], l.folders[j] = l.folders[j], l.folders[i] }

func sortFolders(folders []*FolderPair, key SortKey) {
	sort.Stable(sortableFolderList{folders: folders, key: key})
}

type sortableFileList struct {
	files []*FilePair
	key   SortKey
}

func (l sortableFileList) Len() int { return len(l.files) }
func (l sortableFileList) Less(i, j int) bool {
	a, b := l.files[i], l.files[j]
	return lessByKey(l.key, canonicalName(a.PairState), a.Category, a.Operation, canonicalName(b.PairState), b.Category, b.Operation)
}
func (l sortableFileList) Swap(i, j int) { l.files[i], l.files[j] = l.files[j], l.files[i] }

func sortFiles(files []*FilePair, key SortKey) {
	sort.Stable(sortableFileList{files: files, key: key})
}

type sortableSymlinkList struct {
	symlinks []*SymlinkPair
	key      SortKey
}

func (l sortableSymlinkList) Len() int { return len(l.symlinks) }
func (l sortableSymlinkList) Less(i, j int) bool {
	a, b := l.symlinks[i], l.symlinks[j]
	return lessByKey(l.key, canonicalName(a.PairState), a.Category, a.Operation, canonicalName(b.PairState), b.Category, b.Operation)
}
func (l sortableSymlinkList) Swap(i, j int) {
	l.symlinks[i], l.symlinks[j] = l.symlinks[j], l.symlinks[i]
}

func sortSymlinks(symlinks []*SymlinkPair, key SortKey) {
	sort.Stable(sortableSymlinkList{symlinks: symlinks, key: key})
}
