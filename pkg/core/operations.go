package core

import "github.com/dothezz/foldersync/pkg/filesystem"

// OperationRecord is one entry of the operation stream (spec §4.8): a
// compact record sufficient for the executor to perform the operation
// without further inspection of the paired tree.
type OperationRecord struct {
	ID           PairID
	RelativePath string
	Operation    Operation
	SourceSide   Side
	TargetSide   Side

	// Size and ModificationTime are copied from the item on SourceSide (a
	// symlink's Size is always zero, and folder records carry zero for both).
	// For delete_X and move_X_source that side holds no item, so both are
	// zero; for do_nothing, equal, and unresolved_conflict they describe the
	// left item.
	Size             uint64
	ModificationTime int64

	// Counterpart is the paired identity for move_X_source/move_X_target
	// records (spec §4.5 move detection), the zero PairID otherwise.
	Counterpart PairID

	// ConflictDescription is set only for unresolved_conflict records.
	ConflictDescription string
}

func isCreateFamily(op Operation) bool {
	switch op {
	case OpCreateLeft, OpCreateRight, OpMoveLeftTarget, OpMoveRightTarget:
		return true
	default:
		return false
	}
}

func isDeleteFamily(op Operation) bool {
	switch op {
	case OpDeleteLeft, OpDeleteRight, OpMoveLeftSource, OpMoveRightSource:
		return true
	default:
		return false
	}
}

// sourceTargetSides resolves the (source, target) sides an operation
// carries. For delete_X, "target" is the side losing the item and
// "source" is reported as the opposite side purely for payload symmetry
// (the executor does not read from it).
func sourceTargetSides(op Operation) (source, target Side) {
	switch op {
	case OpCreateRight, OpOverwriteRight, OpCopyMetadataRight, OpMoveRightTarget:
		return Left, Right
	case OpDeleteRight, OpMoveRightSource:
		return Left, Right
	case OpCreateLeft, OpOverwriteLeft, OpCopyMetadataLeft, OpMoveLeftTarget:
		return Right, Left
	case OpDeleteLeft, OpMoveLeftSource:
		return Right, Left
	default:
		return Left, Right
	}
}

// canonicalName returns the pair's name on whichever side has one,
// preferring the left, for use as a path segment in the operation stream.
func canonicalName(state PairState) string {
	if state.LeftName != "" {
		return state.LeftName
	}
	return state.RightName
}

func buildRecord(state PairState, relativePath string, size uint64, modTime int64) OperationRecord {
	record := OperationRecord{
		ID:           state.ID,
		RelativePath: relativePath,
		Operation:    state.Operation,
		Size:         size,
		ModificationTime: modTime,
	}
	record.SourceSide, record.TargetSide = sourceTargetSides(state.Operation)
	if state.Operation == OpMoveLeftSource || state.Operation == OpMoveLeftTarget ||
		state.Operation == OpMoveRightSource || state.Operation == OpMoveRightTarget {
		record.Counterpart = state.MovePartner
	}
	if state.Operation == OpUnresolvedConflict {
		record.ConflictDescription = state.DirectionConflict
	}
	return record
}

// BuildOperationStream flattens a base-pair's resolved tree into the
// operation stream (spec §4.8, P5): each active pair appears exactly once,
// in pre-order, except that a folder whose own operation is in the
// delete_X family is emitted after its children rather than before (so
// deletes empty containers only once their contents are gone, and creates
// bring a container into existence before anything is written beneath
// it).
func BuildOperationStream(base *BasePair) []OperationRecord {
	var stream []OperationRecord

	for _, file := range base.Files {
		appendLeaf(&stream, file.PairState, canonicalName(file.PairState), file.Left.Size, file.Left.ModificationTime, file.Right.Size, file.Right.ModificationTime)
	}
	for _, symlink := range base.Symlinks {
		appendLeaf(&stream, symlink.PairState, canonicalName(symlink.PairState), 0, symlink.Left.ModificationTime, 0, symlink.Right.ModificationTime)
	}
	for _, folder := range base.Folders {
		appendFolder(&stream, folder, "")
	}

	return stream
}

func appendLeaf(stream *[]OperationRecord, state PairState, relativePath string, leftSize uint64, leftMod int64, rightSize uint64, rightMod int64) {
	if !state.Active {
		return
	}
	source, _ := sourceTargetSides(state.Operation)
	size, modTime := leftSize, leftMod
	if source == Right {
		size, modTime = rightSize, rightMod
	}
	*stream = append(*stream, buildRecord(state, relativePath, size, modTime))
}

func appendFolder(stream *[]OperationRecord, folder *FolderPair, pathPrefix string) {
	path := filesystem.AppendRelative(pathPrefix, canonicalName(folder.PairState))

	emitOwn := folder.Active
	createFirst := isCreateFamily(folder.Operation) || !isDeleteFamily(folder.Operation)

	if emitOwn && createFirst {
		*stream = append(*stream, buildRecord(folder.PairState, path, 0, 0))
	}

	for _, file := range folder.Files {
		appendLeaf(stream, file.PairState, filesystem.AppendRelative(path, canonicalName(file.PairState)), file.Left.Size, file.Left.ModificationTime, file.Right.Size, file.Right.ModificationTime)
	}
	for _, symlink := range folder.Symlinks {
		appendLeaf(stream, symlink.PairState, filesystem.AppendRelative(path, canonicalName(symlink.PairState)), 0, symlink.Left.ModificationTime, 0, symlink.Right.ModificationTime)
	}
	for _, child := range folder.Folders {
		appendFolder(stream, child, path)
	}

	if emitOwn && !createFirst {
		*stream = append(*stream, buildRecord(folder.PairState, path, 0, 0))
	}
}
