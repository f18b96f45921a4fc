package core

import "testing"

func TestBuildOperationStreamOrdersCreatesBeforeContents(t *testing.T) {
	child := &FilePair{PairState: PairState{LeftName: "a.txt", RightName: "", Active: true, Operation: OpCreateRight}}
	folder := &FolderPair{
		PairState: PairState{LeftName: "sub", RightName: "", Active: true, Operation: OpCreateRight},
		Files:     []*FilePair{child},
	}
	base := &BasePair{Folders: []*FolderPair{folder}}

	stream := BuildOperationStream(base)
	if len(stream) != 2 {
		t.Fatalf("got %d records, want 2", len(stream))
	}
	if stream[0].RelativePath != "sub" {
		t.Errorf("expected folder record first, got %q", stream[0].RelativePath)
	}
	if stream[1].RelativePath != "sub/a.txt" {
		t.Errorf("expected child record second, got %q", stream[1].RelativePath)
	}
}

func TestBuildOperationStreamOrdersDeletesAfterContents(t *testing.T) {
	child := &FilePair{PairState: PairState{LeftName: "", RightName: "a.txt", Active: true, Operation: OpDeleteRight}}
	folder := &FolderPair{
		PairState: PairState{LeftName: "", RightName: "sub", Active: true, Operation: OpDeleteRight},
		Files:     []*FilePair{child},
	}
	base := &BasePair{Folders: []*FolderPair{folder}}

	stream := BuildOperationStream(base)
	if len(stream) != 2 {
		t.Fatalf("got %d records, want 2", len(stream))
	}
	if stream[0].RelativePath != "sub/a.txt" {
		t.Errorf("expected child delete first, got %q", stream[0].RelativePath)
	}
	if stream[1].RelativePath != "sub" {
		t.Errorf("expected folder delete last, got %q", stream[1].RelativePath)
	}
}

func TestBuildOperationStreamSkipsInactivePairs(t *testing.T) {
	file := &FilePair{PairState: PairState{LeftName: "a.txt", Active: false, Operation: OpCreateRight}}
	base := &BasePair{Files: []*FilePair{file}}

	stream := BuildOperationStream(base)
	if len(stream) != 0 {
		t.Errorf("expected inactive pair to be excluded, got %d records", len(stream))
	}
}

func TestBuildOperationStreamMoveCarriesCounterpart(t *testing.T) {
	source := &FilePair{PairState: PairState{LeftName: "", RightName: "old.bin", Active: true, Operation: OpMoveRightSource}}
	target := &FilePair{PairState: PairState{LeftName: "new.bin", RightName: "", Active: true, Operation: OpMoveRightTarget}}
	table := NewTable[any]()
	source.ID = table.Register(source)
	target.ID = table.Register(target)
	source.MovePartner = target.ID
	target.MovePartner = source.ID

	base := &BasePair{Files: []*FilePair{source, target}}
	stream := BuildOperationStream(base)

	if len(stream) != 2 {
		t.Fatalf("got %d records, want 2", len(stream))
	}
	if stream[0].Counterpart != target.ID || stream[1].Counterpart != source.ID {
		t.Error("expected move records to carry each other's identity as Counterpart")
	}
}

func TestBuildOperationStreamUnresolvedConflictCarriesDescription(t *testing.T) {
	file := &FilePair{PairState: PairState{
		LeftName: "y.txt", RightName: "y.txt", Active: true,
		Operation: OpUnresolvedConflict, DirectionConflict: "both sides changed since last synchronization",
	}}
	base := &BasePair{Files: []*FilePair{file}}

	stream := BuildOperationStream(base)
	if len(stream) != 1 {
		t.Fatalf("got %d records, want 1", len(stream))
	}
	if stream[0].ConflictDescription == "" {
		t.Error("expected the conflict description to carry through to the operation record")
	}
}
