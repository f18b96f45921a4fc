package core

// deleteSide reports the side a delete_X-family operation removes the item
// from, or ok=false if op is not in the delete family.
func deleteSide(op Operation) (side Side, ok bool) {
	switch op {
	case OpDeleteLeft, OpMoveLeftSource:
		return Left, true
	case OpDeleteRight, OpMoveRightSource:
		return Right, true
	default:
		return 0, false
	}
}

// createSide reports the side a create_X-family operation populates, or
// ok=false if op is not in the create family.
func createSide(op Operation) (side Side, ok bool) {
	switch op {
	case OpCreateLeft, OpMoveLeftTarget:
		return Left, true
	case OpCreateRight, OpMoveRightTarget:
		return Right, true
	default:
		return 0, false
	}
}

// PropagateContainers adjusts a folder pair's own operation to stay
// consistent with what its resolved children actually need (spec §4.5
// "container propagation"): a folder scheduled for deletion on a side
// cannot actually be deleted there if something underneath it on that same
// side still needs to be created, and cannot be deleted if a child is
// simply staying as-is. It must run after Step A/B direction resolution and
// move detection have set every pair's Operation, and before
// BuildOperationStream observes folder operations (DetectMoves only
// considers file pairs, so it is unaffected by this pass). Children
// are resolved first (post-order), since a folder's own verdict depends on
// its children's final operations.
func PropagateContainers(base *BasePair) {
	for _, folder := range base.Folders {
		propagateFolder(folder)
	}
}

func propagateFolder(folder *FolderPair) {
	for _, child := range folder.Folders {
		propagateFolder(child)
	}

	side, deleting := deleteSide(folder.Operation)
	if !deleting {
		return
	}

	if folderNeedsCreateOn(folder, side) {
		if side == Left {
			folder.Operation = OpCreateLeft
			folder.SetDirection(DirectionLeft, "")
		} else {
			folder.Operation = OpCreateRight
			folder.SetDirection(DirectionRight, "")
		}
		return
	}

	if folderHasSurvivorOn(folder, side) {
		folder.Operation = OpDoNothing
		folder.SetDirection(DirectionNone, "")
	}
}

// folderNeedsCreateOn reports whether any direct child of folder has a
// create-family operation that populates side.
func folderNeedsCreateOn(folder *FolderPair, side Side) bool {
	for _, file := range folder.Files {
		if s, ok := createSide(file.Operation); ok && s == side {
			return true
		}
	}
	for _, symlink := range folder.Symlinks {
		if s, ok := createSide(symlink.Operation); ok && s == side {
			return true
		}
	}
	for _, child := range folder.Folders {
		if s, ok := createSide(child.Operation); ok && s == side {
			return true
		}
	}
	return false
}

// folderHasSurvivorOn reports whether any direct child of folder exists on
// side and is not itself being removed from side.
func folderHasSurvivorOn(folder *FolderPair, side Side) bool {
	for _, file := range folder.Files {
		if file.ExistsOn(side) {
			if s, ok := deleteSide(file.Operation); !ok || s != side {
				return true
			}
		}
	}
	for _, symlink := range folder.Symlinks {
		if symlink.ExistsOn(side) {
			if s, ok := deleteSide(symlink.Operation); !ok || s != side {
				return true
			}
		}
	}
	for _, child := range folder.Folders {
		if child.ExistsOn(side) {
			if s, ok := deleteSide(child.Operation); !ok || s != side {
				return true
			}
		}
	}
	return false
}
