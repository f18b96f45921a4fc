package database

import (
	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filesystem"
)

// Index is a flattened, by-path view of a Tree, used to drive both move
// detection (core.DBIdentityLookup) and two-way direction resolution
// (core.ResolveTwoWay) without re-walking the recorded tree for every pair.
type Index struct {
	files    map[string]FileEntry
	symlinks map[string]SymlinkEntry
	folders  map[string]FolderEntry
}

// BuildIndex flattens tree into path-keyed lookup tables.
func BuildIndex(tree Tree) *Index {
	idx := &Index{
		files:    make(map[string]FileEntry),
		symlinks: make(map[string]SymlinkEntry),
		folders:  make(map[string]FolderEntry),
	}
	idx.walk("", tree.Root)
	return idx
}

func (idx *Index) walk(prefix string, dir Directory) {
	for _, f := range dir.Files {
		idx.files[childPath(prefix, f.Name)] = f
	}
	for _, s := range dir.Symlinks {
		idx.symlinks[childPath(prefix, s.Name)] = s
	}
	for _, d := range dir.Folders {
		path := childPath(prefix, d.Name)
		idx.folders[path] = d
		idx.walk(path, d.Children)
	}
}

// File returns the recorded entry for a file's relative path, and whether
// one exists.
func (idx *Index) File(path string) (FileEntry, bool) {
	e, ok := idx.files[path]
	return e, ok
}

// Symlink returns the recorded entry for a symlink's relative path.
func (idx *Index) Symlink(path string) (SymlinkEntry, bool) {
	e, ok := idx.symlinks[path]
	return e, ok
}

// Folder returns the recorded entry for a folder's relative path.
func (idx *Index) Folder(path string) (FolderEntry, bool) {
	e, ok := idx.folders[path]
	return e, ok
}

// IdentityLookup adapts idx into the core.DBIdentityLookup move detection
// needs (spec §4.5): the identity the database last recorded for a file on
// a given side.
func (idx *Index) IdentityLookup() core.DBIdentityLookup {
	return func(relativePath string, side core.Side) (filesystem.Identity, bool) {
		entry, ok := idx.files[relativePath]
		if !ok {
			return filesystem.Identity{}, false
		}
		descriptor := entry.Left
		if side == core.Right {
			descriptor = entry.Right
		}
		return descriptor.Identity, descriptor.Identity.Valid()
	}
}

// ClassifyFileSide reports how one side of a recorded file relates to its
// current state, for core.ResolveTwoWay's step 4 (spec §4.5): exists is
// whether the pair currently has this side at all. The modification-time
// comparison honors the same tolerance-seconds and ignored time-shift-minute
// offsets as categorization (spec §4.5 step 3: "the same tolerance rules as
// §4.4"), so a DST shift or filesystem rounding that CategorizeFiles would
// treat as equal doesn't spuriously read as a database-side change.
func ClassifyFileSide(entry FileEntry, side core.Side, exists bool, current filesystem.FileDescriptor, toleranceSeconds int64, ignoredShiftMinutes []int) core.DBSideState {
	if !exists {
		return core.DBDeleted
	}
	recorded := entry.Left
	if side == core.Right {
		recorded = entry.Right
	}
	if recorded.Size == current.Size &&
		recorded.Identity == current.Identity &&
		core.TimeEqual(recorded.ModificationTime, current.ModificationTime, toleranceSeconds, ignoredShiftMinutes) {
		return core.DBUnchanged
	}
	return core.DBChanged
}

// ClassifySymlinkSide is ClassifyFileSide's symlink counterpart.
func ClassifySymlinkSide(entry SymlinkEntry, side core.Side, exists bool, current filesystem.SymlinkDescriptor, toleranceSeconds int64, ignoredShiftMinutes []int) core.DBSideState {
	if !exists {
		return core.DBDeleted
	}
	recorded := entry.Left
	if side == core.Right {
		recorded = entry.Right
	}
	if recorded.Target == current.Target &&
		core.TimeEqual(recorded.ModificationTime, current.ModificationTime, toleranceSeconds, ignoredShiftMinutes) {
		return core.DBUnchanged
	}
	return core.DBChanged
}

// ClassifyFolderSide is ClassifyFileSide's folder counterpart. A recorded
// folder has no content to diff, so the only state that matters is whether
// it is still present: exists reports that for the live pair's side.
func ClassifyFolderSide(_ FolderEntry, _ core.Side, exists bool) core.DBSideState {
	if !exists {
		return core.DBDeleted
	}
	return core.DBUnchanged
}

// DBLookup adapts idx into the core.DBLookup bundle core.ResolveBasePair
// needs to drive two-way resolution and move detection, without core ever
// importing this package. toleranceSeconds/ignoredShiftMinutes should be
// the same values the base-pair's own categorization uses (spec §4.5 step
// 3), so file/symlink side classification tolerates the same clock skew
// categorization does.
func (idx *Index) DBLookup(toleranceSeconds int64, ignoredShiftMinutes []int) *core.DBLookup {
	return &core.DBLookup{
		Files: func(path string, pair *core.FilePair) (bool, core.DBSideState, core.DBSideState) {
			entry, present := idx.files[path]
			left := ClassifyFileSide(entry, core.Left, pair.ExistsOn(core.Left), pair.Left, toleranceSeconds, ignoredShiftMinutes)
			right := ClassifyFileSide(entry, core.Right, pair.ExistsOn(core.Right), pair.Right, toleranceSeconds, ignoredShiftMinutes)
			return present, left, right
		},
		Symlinks: func(path string, pair *core.SymlinkPair) (bool, core.DBSideState, core.DBSideState) {
			entry, present := idx.symlinks[path]
			left := ClassifySymlinkSide(entry, core.Left, pair.ExistsOn(core.Left), pair.Left, toleranceSeconds, ignoredShiftMinutes)
			right := ClassifySymlinkSide(entry, core.Right, pair.ExistsOn(core.Right), pair.Right, toleranceSeconds, ignoredShiftMinutes)
			return present, left, right
		},
		Folders: func(path string, pair *core.FolderPair) (bool, core.DBSideState, core.DBSideState) {
			entry, present := idx.folders[path]
			left := ClassifyFolderSide(entry, core.Left, pair.ExistsOn(core.Left))
			right := ClassifyFolderSide(entry, core.Right, pair.ExistsOn(core.Right))
			return present, left, right
		},
		Identity: idx.IdentityLookup(),
	}
}
