package core

import "github.com/dothezz/foldersync/pkg/filesystem"

// DBFileState resolves a file pair's recorded state in the in-sync database
// for two-way resolution (spec §4.5 steps 3-4): present reports whether the
// database has any entry for relativePath, and left/right classify each
// side against what the database last recorded.
type DBFileState func(relativePath string, pair *FilePair) (present bool, left, right DBSideState)

// DBSymlinkState is DBFileState's symlink counterpart.
type DBSymlinkState func(relativePath string, pair *SymlinkPair) (present bool, left, right DBSideState)

// DBFolderState is DBFileState's folder counterpart.
type DBFolderState func(relativePath string, pair *FolderPair) (present bool, left, right DBSideState)

// DBLookup bundles the in-sync database queries ResolveBasePair needs for
// two-way resolution and move detection, keeping this package decoupled
// from the database's on-disk representation (the same role
// DBIdentityLookup already plays for move detection alone). A nil DBLookup,
// or a nil field within one, is treated as "no prior database" for that
// item kind.
type DBLookup struct {
	Files    DBFileState
	Symlinks DBSymlinkState
	Folders  DBFolderState
	Identity DBIdentityLookup
}

// UserDirections supplies the per-item direction choice spec §4.5 step A's
// "custom" variant needs, keyed by full relative path. A path absent from
// the map resolves to DirectionNone, meaning "leave this item unresolved".
type UserDirections map[string]Direction

// ResolveBasePair fills in Direction, DirectionConflict, and Operation for
// every pair in base's already-categorized tree (populated by a prior scan,
// spec §4.5 steps A and B), then runs move detection over the full set of
// file pairs (spec §4.5 "move detection"). db may be nil for variants that
// never consult the database (mirror, update, custom); userDirections may
// be nil unless base.Variant is SyncCustom.
func ResolveBasePair(base *BasePair, db *DBLookup, userDirections UserDirections) {
	var moveCandidates []MoveCandidateFile

	resolveFile := func(path string, pair *FilePair) {
		direction, conflict := resolveDirection(base.Variant, pair.Category, path, userDirections,
			func() (bool, DBSideState, DBSideState) {
				if db == nil || db.Files == nil {
					return false, DBUnchanged, DBUnchanged
				}
				return db.Files(path, pair)
			})
		pair.SetDirection(direction, conflict)
		pair.Operation = ResolveStepB(pair.Category, pair.Direction)
		if pair.DirectionConflict != "" {
			pair.Operation = OpUnresolvedConflict
		}
		moveCandidates = append(moveCandidates, MoveCandidateFile{RelativePath: path, Pair: pair})
	}

	resolveSymlink := func(path string, pair *SymlinkPair) {
		direction, conflict := resolveDirection(base.Variant, pair.Category, path, userDirections,
			func() (bool, DBSideState, DBSideState) {
				if db == nil || db.Symlinks == nil {
					return false, DBUnchanged, DBUnchanged
				}
				return db.Symlinks(path, pair)
			})
		pair.SetDirection(direction, conflict)
		pair.Operation = ResolveStepB(pair.Category, pair.Direction)
		if pair.DirectionConflict != "" {
			pair.Operation = OpUnresolvedConflict
		}
	}

	var resolveFolder func(path string, folder *FolderPair)
	resolveFolder = func(path string, folder *FolderPair) {
		direction, conflict := resolveDirection(base.Variant, folder.Category, path, userDirections,
			func() (bool, DBSideState, DBSideState) {
				if db == nil || db.Folders == nil {
					return false, DBUnchanged, DBUnchanged
				}
				return db.Folders(path, folder)
			})
		folder.SetDirection(direction, conflict)
		folder.Operation = ResolveStepB(folder.Category, folder.Direction)
		if folder.DirectionConflict != "" {
			folder.Operation = OpUnresolvedConflict
		}

		for _, file := range folder.Files {
			resolveFile(filesystem.PathJoin(path, canonicalName(file.PairState)), file)
		}
		for _, symlink := range folder.Symlinks {
			resolveSymlink(filesystem.PathJoin(path, canonicalName(symlink.PairState)), symlink)
		}
		for _, child := range folder.Folders {
			resolveFolder(filesystem.PathJoin(path, canonicalName(child.PairState)), child)
		}
	}

	for _, file := range base.Files {
		resolveFile(canonicalName(file.PairState), file)
	}
	for _, symlink := range base.Symlinks {
		resolveSymlink(canonicalName(symlink.PairState), symlink)
	}
	for _, folder := range base.Folders {
		resolveFolder(canonicalName(folder.PairState), folder)
	}

	var identityLookup DBIdentityLookup
	if db != nil {
		identityLookup = db.Identity
	}
	DetectMoves(moveCandidates, identityLookup)
}

// resolveDirection runs spec §4.5 step A for one pair, consulting twoWay
// only when variant actually needs it (SyncTwoWay).
func resolveDirection(variant SyncVariant, category Category, path string, userDirections UserDirections, twoWay func() (bool, DBSideState, DBSideState)) (Direction, string) {
	var dbDirection Direction
	var dbConflict string
	if variant == SyncTwoWay {
		present, left, right := twoWay()
		dbDirection, dbConflict = ResolveTwoWay(present, category, left, right)
	}
	return ResolveStepA(category, variant, dbDirection, dbConflict, userDirections[path])
}
