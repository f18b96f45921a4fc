package core

// SyncVariant selects the synchronization policy family (spec §4.5, §6).
type SyncVariant uint8

const (
	// SyncMirror makes the right side an exact copy of the left.
	SyncMirror SyncVariant = iota
	// SyncUpdate propagates left-side changes to the right but never
	// deletes or overwrites the left side.
	SyncUpdate
	// SyncTwoWay derives direction from the in-sync database, allowing
	// changes to propagate in either direction.
	SyncTwoWay
	// SyncCustom defers every per-item decision to the user.
	SyncCustom
)

// Direction is the abstract "which side receives the change" (spec
// glossary).
type Direction uint8

const (
	// DirectionNone indicates no change is required.
	DirectionNone Direction = iota
	// DirectionLeft indicates the left side receives the change.
	DirectionLeft
	// DirectionRight indicates the right side receives the change.
	DirectionRight
)

// Operation is the concrete action for the executor (spec §4.5), a closed
// set of fifteen values.
type Operation uint8

const (
	// OpCreateLeft creates the item on the left from the right.
	OpCreateLeft Operation = iota
	// OpCreateRight creates the item on the right from the left.
	OpCreateRight
	// OpDeleteLeft deletes the item from the left.
	OpDeleteLeft
	// OpDeleteRight deletes the item from the right.
	OpDeleteRight
	// OpOverwriteLeft overwrites the left item's content with the right's.
	OpOverwriteLeft
	// OpOverwriteRight overwrites the right item's content with the left's.
	OpOverwriteRight
	// OpCopyMetadataLeft copies metadata (but not content) from right to left.
	OpCopyMetadataLeft
	// OpCopyMetadataRight copies metadata (but not content) from left to right.
	OpCopyMetadataRight
	// OpMoveLeftSource marks this pair as the source of a detected move
	// whose target will land on the left.
	OpMoveLeftSource
	// OpMoveLeftTarget marks this pair as the target of a detected move
	// whose source was on the left-missing side.
	OpMoveLeftTarget
	// OpMoveRightSource marks this pair as the source of a detected move
	// whose target will land on the right.
	OpMoveRightSource
	// OpMoveRightTarget marks this pair as the target of a detected move
	// whose source was on the right-missing side.
	OpMoveRightTarget
	// OpDoNothing indicates no action, distinct from OpEqual (spec I5: an
	// unresolved direction on a non-equal category still needs exactly one
	// operation).
	OpDoNothing
	// OpEqual indicates the pair is already equal on both sides.
	OpEqual
	// OpUnresolvedConflict indicates a conflict that could not be resolved
	// automatically; ConflictDescription on the pair explains why.
	OpUnresolvedConflict
)

// String implements fmt.Stringer.
func (o Operation) String() string {
	switch o {
	case OpCreateLeft:
		return "create_left"
	case OpCreateRight:
		return "create_right"
	case OpDeleteLeft:
		return "delete_left"
	case OpDeleteRight:
		return "delete_right"
	case OpOverwriteLeft:
		return "overwrite_left"
	case OpOverwriteRight:
		return "overwrite_right"
	case OpCopyMetadataLeft:
		return "copy_metadata_left"
	case OpCopyMetadataRight:
		return "copy_metadata_right"
	case OpMoveLeftSource:
		return "move_left_source"
	case OpMoveLeftTarget:
		return "move_left_target"
	case OpMoveRightSource:
		return "move_right_source"
	case OpMoveRightTarget:
		return "move_right_target"
	case OpDoNothing:
		return "do_nothing"
	case OpEqual:
		return "equal"
	case OpUnresolvedConflict:
		return "unresolved_conflict"
	default:
		return "unknown"
	}
}

// DBSideState classifies one side of a pair relative to the in-sync
// database's recorded descriptor (spec §4.5 step 3).
type DBSideState uint8

const (
	// DBUnchanged indicates the side matches the database's record.
	DBUnchanged DBSideState = iota
	// DBChanged indicates the side differs from the database's record but
	// still exists.
	DBChanged
	// DBDeleted indicates the side no longer exists relative to the
	// database's record.
	DBDeleted
)

// conflictBothChanged is the conflict description used when both sides
// changed since the last synchronization (spec §4.5, scenario 4).
const conflictBothChanged = "both sides changed since last synchronization"

// ResolveStepA computes the direction for a pair given its category and the
// synchronization variant, per spec §4.5's "variant to direction" table.
// For SyncTwoWay, dbDirection and dbConflict must come from ResolveTwoWay.
// For SyncCustom, userDirection is the user's per-item choice.
func ResolveStepA(category Category, variant SyncVariant, dbDirection Direction, dbConflict string, userDirection Direction) (Direction, string) {
	if category == CategoryEqual {
		return DirectionNone, ""
	}

	switch variant {
	case SyncMirror:
		return DirectionRight, ""
	case SyncUpdate:
		switch category {
		case CategoryLeftOnly, CategoryLeftNewer, CategoryDifferentContent, CategoryDifferentMetadata:
			return DirectionRight, ""
		default:
			return DirectionNone, ""
		}
	case SyncTwoWay:
		return dbDirection, dbConflict
	case SyncCustom:
		return userDirection, ""
	default:
		return DirectionNone, ""
	}
}

// ResolveStepB computes the operation for a pair given its category and
// resolved direction (spec §4.5 step B).
func ResolveStepB(category Category, direction Direction) Operation {
	switch category {
	case CategoryEqual:
		return OpEqual
	case CategoryLeftOnly:
		switch direction {
		case DirectionLeft:
			return OpDeleteLeft
		case DirectionRight:
			return OpCreateRight
		default:
			return OpDoNothing
		}
	case CategoryRightOnly:
		switch direction {
		case DirectionRight:
			return OpDeleteRight
		case DirectionLeft:
			return OpCreateLeft
		default:
			return OpDoNothing
		}
	case CategoryLeftNewer, CategoryRightNewer, CategoryDifferentContent, CategoryConflict:
		switch direction {
		case DirectionLeft:
			return OpOverwriteLeft
		case DirectionRight:
			return OpOverwriteRight
		default:
			if category == CategoryConflict {
				return OpUnresolvedConflict
			}
			return OpDoNothing
		}
	case CategoryDifferentMetadata:
		switch direction {
		case DirectionLeft:
			return OpCopyMetadataLeft
		case DirectionRight:
			return OpCopyMetadataRight
		default:
			return OpDoNothing
		}
	default:
		return OpDoNothing
	}
}

// ResolveTwoWay computes the database-derived direction for a pair given the
// classification of each side relative to the database (spec §4.5 step 4).
// present indicates whether the pair has a database entry at all; when it
// does not, step 2's first-time-sync rules apply instead.
func ResolveTwoWay(present bool, category Category, left, right DBSideState) (Direction, string) {
	if !present {
		switch category {
		case CategoryLeftOnly:
			return DirectionRight, ""
		case CategoryRightOnly:
			return DirectionLeft, ""
		case CategoryEqual:
			return DirectionNone, ""
		default:
			return DirectionNone, conflictBothChanged
		}
	}

	switch left {
	case DBUnchanged:
		switch right {
		case DBUnchanged:
			return DirectionNone, ""
		case DBChanged:
			return DirectionLeft, ""
		case DBDeleted:
			return DirectionLeft, ""
		}
	case DBChanged:
		switch right {
		case DBUnchanged:
			return DirectionRight, ""
		case DBChanged:
			return DirectionNone, conflictBothChanged
		case DBDeleted:
			return DirectionRight, ""
		}
	case DBDeleted:
		switch right {
		case DBUnchanged:
			return DirectionRight, ""
		case DBChanged:
			return DirectionLeft, ""
		case DBDeleted:
			return DirectionNone, ""
		}
	}
	return DirectionNone, ""
}
