package core

import (
	"testing"

	"github.com/dothezz/foldersync/pkg/filesystem"
)

func TestResolveBasePairMirrorSetsOperations(t *testing.T) {
	file := &FilePair{PairState: PairState{LeftName: "a.txt", RightName: "", Category: CategoryLeftOnly}}
	folder := &FolderPair{
		PairState: PairState{LeftName: "sub", RightName: "", Category: CategoryLeftOnly},
		Files:     []*FilePair{file},
	}
	base := &BasePair{Variant: SyncMirror, Folders: []*FolderPair{folder}}

	ResolveBasePair(base, nil, nil)

	if folder.Direction != DirectionRight || folder.Operation != OpCreateRight {
		t.Errorf("folder: got (%v, %v), want (right, create_right)", folder.Direction, folder.Operation)
	}
	if file.Direction != DirectionRight || file.Operation != OpCreateRight {
		t.Errorf("file: got (%v, %v), want (right, create_right)", file.Direction, file.Operation)
	}
}

func TestResolveBasePairCustomUsesUserDirections(t *testing.T) {
	file := &FilePair{PairState: PairState{LeftName: "sub", RightName: "sub", Category: CategoryDifferentContent}}
	folder := &FolderPair{PairState: PairState{LeftName: "f", RightName: "f", Category: CategoryEqual}, Files: []*FilePair{file}}
	base := &BasePair{Variant: SyncCustom, Folders: []*FolderPair{folder}}

	ResolveBasePair(base, nil, UserDirections{"f/sub": DirectionLeft})

	if file.Direction != DirectionLeft || file.Operation != OpOverwriteLeft {
		t.Errorf("got (%v, %v), want (left, overwrite_left)", file.Direction, file.Operation)
	}
}

func TestResolveBasePairTwoWayConsultsDB(t *testing.T) {
	file := &FilePair{PairState: PairState{LeftName: "a.txt", RightName: "a.txt", Category: CategoryDifferentContent}}
	base := &BasePair{Variant: SyncTwoWay, Files: []*FilePair{file}}

	db := &DBLookup{
		Files: func(path string, pair *FilePair) (bool, DBSideState, DBSideState) {
			if path != "a.txt" {
				t.Fatalf("unexpected path %q", path)
			}
			return true, DBChanged, DBUnchanged
		},
	}

	ResolveBasePair(base, db, nil)

	if file.Direction != DirectionRight || file.Operation != OpOverwriteRight {
		t.Errorf("got (%v, %v), want (right, overwrite_right)", file.Direction, file.Operation)
	}
}

func TestResolveBasePairTwoWayBothChangedIsUnresolvedConflict(t *testing.T) {
	file := &FilePair{PairState: PairState{LeftName: "a.txt", RightName: "a.txt", Category: CategoryDifferentContent}}
	base := &BasePair{Variant: SyncTwoWay, Files: []*FilePair{file}}

	db := &DBLookup{
		Files: func(path string, pair *FilePair) (bool, DBSideState, DBSideState) {
			return true, DBChanged, DBChanged
		},
	}

	ResolveBasePair(base, db, nil)

	if file.Operation != OpUnresolvedConflict {
		t.Errorf("got %v, want unresolved_conflict", file.Operation)
	}
	if file.DirectionConflict == "" {
		t.Error("expected a non-empty conflict description")
	}
}

func TestResolveBasePairDetectsNestedMove(t *testing.T) {
	identity := filesystem.Identity{Device: 1, File: 7}

	oldFile := &FilePair{
		PairState: PairState{LeftName: "old.bin", RightName: "", Category: CategoryLeftOnly},
	}
	newFile := &FilePair{
		PairState: PairState{LeftName: "", RightName: "new.bin", Category: CategoryRightOnly},
		Right:     filesystem.FileDescriptor{Identity: identity},
	}
	table := NewTable[any]()
	oldFile.ID = table.Register(oldFile)
	newFile.ID = table.Register(newFile)
	folder := &FolderPair{
		PairState: PairState{LeftName: "sub", RightName: "sub", Category: CategoryEqual},
		Files:     []*FilePair{oldFile, newFile},
	}
	base := &BasePair{Variant: SyncMirror, Folders: []*FolderPair{folder}}

	db := &DBLookup{
		Identity: func(relativePath string, side Side) (filesystem.Identity, bool) {
			if relativePath == "sub/old.bin" && side == Right {
				return identity, true
			}
			return filesystem.Identity{}, false
		},
	}

	ResolveBasePair(base, db, nil)

	if oldFile.Operation != OpMoveRightTarget {
		t.Errorf("old.bin: got %v, want move_right_target", oldFile.Operation)
	}
	if newFile.Operation != OpMoveRightSource {
		t.Errorf("new.bin: got %v, want move_right_source", newFile.Operation)
	}
	if oldFile.MovePartner != newFile.ID || newFile.MovePartner != oldFile.ID {
		t.Error("expected old.bin and new.bin to reference each other as move partners")
	}
}
