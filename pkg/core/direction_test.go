package core

import "testing"

func TestResolveStepAMirror(t *testing.T) {
	direction, _ := ResolveStepA(CategoryLeftOnly, SyncMirror, DirectionNone, "", DirectionNone)
	if direction != DirectionRight {
		t.Errorf("mirror of left_only: got %v, want right", direction)
	}

	direction, _ = ResolveStepA(CategoryRightOnly, SyncMirror, DirectionNone, "", DirectionNone)
	if direction != DirectionRight {
		t.Errorf("mirror of right_only: got %v, want right (deletes it)", direction)
	}
}

func TestResolveStepAUpdateNeverTouchesLeft(t *testing.T) {
	cases := []Category{CategoryRightOnly, CategoryRightNewer, CategoryConflict}
	for _, category := range cases {
		direction, _ := ResolveStepA(category, SyncUpdate, DirectionNone, "", DirectionNone)
		if direction != DirectionNone {
			t.Errorf("update variant on %v: got %v, want none", category, direction)
		}
	}

	direction, _ := ResolveStepA(CategoryLeftOnly, SyncUpdate, DirectionNone, "", DirectionNone)
	if direction != DirectionRight {
		t.Errorf("update variant on left_only: got %v, want right", direction)
	}
}

func TestResolveStepATwoWayDelegatesToDBDirection(t *testing.T) {
	direction, conflict := ResolveStepA(CategoryDifferentContent, SyncTwoWay, DirectionLeft, "", DirectionNone)
	if direction != DirectionLeft || conflict != "" {
		t.Errorf("got (%v, %q), want (left, \"\")", direction, conflict)
	}
}

func TestResolveStepACustomUsesUserChoice(t *testing.T) {
	direction, _ := ResolveStepA(CategoryDifferentContent, SyncCustom, DirectionNone, "", DirectionLeft)
	if direction != DirectionLeft {
		t.Errorf("custom variant: got %v, want left", direction)
	}
}

func TestResolveStepAEqualIsAlwaysNone(t *testing.T) {
	for _, variant := range []SyncVariant{SyncMirror, SyncUpdate, SyncTwoWay, SyncCustom} {
		direction, _ := ResolveStepA(CategoryEqual, variant, DirectionRight, "", DirectionRight)
		if direction != DirectionNone {
			t.Errorf("variant %v on equal category: got %v, want none", variant, direction)
		}
	}
}

func TestResolveStepBLeftOnly(t *testing.T) {
	if op := ResolveStepB(CategoryLeftOnly, DirectionRight); op != OpCreateRight {
		t.Errorf("got %v, want create_right", op)
	}
	if op := ResolveStepB(CategoryLeftOnly, DirectionLeft); op != OpDeleteLeft {
		t.Errorf("got %v, want delete_left", op)
	}
	if op := ResolveStepB(CategoryLeftOnly, DirectionNone); op != OpDoNothing {
		t.Errorf("got %v, want do_nothing", op)
	}
}

func TestResolveStepBConflictUnresolvedWhenNone(t *testing.T) {
	if op := ResolveStepB(CategoryConflict, DirectionNone); op != OpUnresolvedConflict {
		t.Errorf("got %v, want unresolved_conflict", op)
	}
	if op := ResolveStepB(CategoryConflict, DirectionRight); op != OpOverwriteRight {
		t.Errorf("got %v, want overwrite_right", op)
	}
}

func TestResolveStepBDifferentMetadata(t *testing.T) {
	if op := ResolveStepB(CategoryDifferentMetadata, DirectionLeft); op != OpCopyMetadataLeft {
		t.Errorf("got %v, want copy_metadata_left", op)
	}
	if op := ResolveStepB(CategoryDifferentMetadata, DirectionRight); op != OpCopyMetadataRight {
		t.Errorf("got %v, want copy_metadata_right", op)
	}
}

func TestResolveStepBEqual(t *testing.T) {
	if op := ResolveStepB(CategoryEqual, DirectionNone); op != OpEqual {
		t.Errorf("got %v, want equal", op)
	}
}

func TestResolveTwoWayBothUnchanged(t *testing.T) {
	direction, conflict := ResolveTwoWay(true, CategoryDifferentContent, DBUnchanged, DBUnchanged)
	if direction != DirectionNone || conflict != "" {
		t.Errorf("got (%v, %q)", direction, conflict)
	}
}

func TestResolveTwoWayOneSideChanged(t *testing.T) {
	direction, _ := ResolveTwoWay(true, CategoryDifferentContent, DBChanged, DBUnchanged)
	if direction != DirectionRight {
		t.Errorf("left changed: got %v, want right (propagate left's change)", direction)
	}

	direction, _ = ResolveTwoWay(true, CategoryDifferentContent, DBUnchanged, DBChanged)
	if direction != DirectionLeft {
		t.Errorf("right changed: got %v, want left (propagate right's change)", direction)
	}
}

func TestResolveTwoWayBothChangedIsConflict(t *testing.T) {
	direction, conflict := ResolveTwoWay(true, CategoryDifferentContent, DBChanged, DBChanged)
	if direction != DirectionNone {
		t.Errorf("got direction %v, want none", direction)
	}
	if conflict == "" {
		t.Error("expected a conflict description when both sides changed")
	}
}

func TestResolveTwoWayOneSideDeleted(t *testing.T) {
	direction, _ := ResolveTwoWay(true, CategoryRightOnly, DBDeleted, DBUnchanged)
	if direction != DirectionRight {
		t.Errorf("left deleted, right unchanged: got %v, want right (propagate the deletion)", direction)
	}

	direction, _ = ResolveTwoWay(true, CategoryLeftOnly, DBUnchanged, DBDeleted)
	if direction != DirectionLeft {
		t.Errorf("right deleted, left unchanged: got %v, want left", direction)
	}
}

func TestResolveTwoWayBothDeleted(t *testing.T) {
	direction, conflict := ResolveTwoWay(true, CategoryEqual, DBDeleted, DBDeleted)
	if direction != DirectionNone || conflict != "" {
		t.Errorf("got (%v, %q), want (none, \"\")", direction, conflict)
	}
}

func TestResolveTwoWayAbsentFromDatabase(t *testing.T) {
	direction, conflict := ResolveTwoWay(false, CategoryLeftOnly, DBUnchanged, DBUnchanged)
	if direction != DirectionRight || conflict != "" {
		t.Errorf("left_only with no db entry: got (%v, %q), want (right, \"\")", direction, conflict)
	}

	direction, conflict = ResolveTwoWay(false, CategoryDifferentContent, DBUnchanged, DBUnchanged)
	if direction != DirectionNone || conflict == "" {
		t.Errorf("different_content with no db entry: got (%v, %q), want (none, non-empty)", direction, conflict)
	}
}
