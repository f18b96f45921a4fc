package database

import (
	"testing"

	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filesystem"
	"github.com/dothezz/foldersync/pkg/filter"
)

func TestBuildUpdatedTreeRecordsEqualFilesFresh(t *testing.T) {
	pair := &core.FilePair{
		PairState: core.PairState{LeftName: "a.txt", RightName: "a.txt", Category: core.CategoryEqual},
		Left:      filesystem.FileDescriptor{Size: 10},
		Right:     filesystem.FileDescriptor{Size: 10},
	}
	base := &core.BasePair{Filter: filter.NullFilter{}, Files: []*core.FilePair{pair}}

	updated := BuildUpdatedTree(base, Tree{})

	if len(updated.Root.Files) != 1 || updated.Root.Files[0].Name != "a.txt" {
		t.Fatalf("expected a.txt recorded, got %+v", updated.Root.Files)
	}
	if updated.Root.Files[0].Left.Size != 10 {
		t.Errorf("expected fresh descriptor recorded, got %+v", updated.Root.Files[0])
	}
}

func TestBuildUpdatedTreePreservesUnresolvedItems(t *testing.T) {
	previous := Tree{Root: Directory{Files: []FileEntry{
		{Name: "a.txt", Left: filesystem.FileDescriptor{Size: 1}, Right: filesystem.FileDescriptor{Size: 1}},
	}}}
	pair := &core.FilePair{
		PairState: core.PairState{LeftName: "a.txt", RightName: "a.txt", Category: core.CategoryLeftNewer},
		Left:      filesystem.FileDescriptor{Size: 99},
		Right:     filesystem.FileDescriptor{Size: 1},
	}
	base := &core.BasePair{Filter: filter.NullFilter{}, Files: []*core.FilePair{pair}}

	updated := BuildUpdatedTree(base, previous)

	if len(updated.Root.Files) != 1 {
		t.Fatalf("expected one preserved entry, got %+v", updated.Root.Files)
	}
	if updated.Root.Files[0].Left.Size != 1 {
		t.Errorf("expected previous descriptor preserved (size 1), got %+v", updated.Root.Files[0])
	}
}

func TestBuildUpdatedTreeDropsGenuinelyDeletedItems(t *testing.T) {
	previous := Tree{Root: Directory{Files: []FileEntry{
		{Name: "gone.txt", Left: filesystem.FileDescriptor{Size: 1}},
	}}}
	base := &core.BasePair{Filter: filter.NullFilter{}}

	updated := BuildUpdatedTree(base, previous)

	if len(updated.Root.Files) != 0 {
		t.Fatalf("expected gone.txt dropped, got %+v", updated.Root.Files)
	}
}

func TestBuildUpdatedTreeKeepsFilterHiddenDeletions(t *testing.T) {
	previous := Tree{Root: Directory{Files: []FileEntry{
		{Name: "excluded.log", Left: filesystem.FileDescriptor{Size: 1}},
	}}}
	hidden := filter.NewNameFilter([]string{"*"}, []string{"*.log"}, true)
	base := &core.BasePair{Filter: hidden}

	updated := BuildUpdatedTree(base, previous)

	if len(updated.Root.Files) != 1 || updated.Root.Files[0].Name != "excluded.log" {
		t.Fatalf("expected excluded.log preserved since the filter hides it, got %+v", updated.Root.Files)
	}
}

func TestBuildUpdatedTreeInsertsStrawManForDifferentMetadataWithoutPrior(t *testing.T) {
	pair := &core.FolderPair{
		PairState: core.PairState{LeftName: "Sub", RightName: "sub", Category: core.CategoryDifferentMetadata},
	}
	base := &core.BasePair{Filter: filter.NullFilter{}, Folders: []*core.FolderPair{pair}}

	updated := BuildUpdatedTree(base, Tree{})

	if len(updated.Root.Folders) != 1 {
		t.Fatalf("expected one folder entry, got %+v", updated.Root.Folders)
	}
	if updated.Root.Folders[0].Status != StatusStrawMan {
		t.Errorf("expected straw_man status, got %v", updated.Root.Folders[0].Status)
	}
}

func TestBuildUpdatedTreeRecursesIntoFolders(t *testing.T) {
	child := &core.FilePair{
		PairState: core.PairState{LeftName: "b.txt", RightName: "b.txt", Category: core.CategoryEqual},
		Left:      filesystem.FileDescriptor{Size: 5},
		Right:     filesystem.FileDescriptor{Size: 5},
	}
	folder := &core.FolderPair{
		PairState: core.PairState{LeftName: "sub", RightName: "sub", Category: core.CategoryEqual},
		Files:     []*core.FilePair{child},
	}
	base := &core.BasePair{Filter: filter.NullFilter{}, Folders: []*core.FolderPair{folder}}

	updated := BuildUpdatedTree(base, Tree{})

	if len(updated.Root.Folders) != 1 {
		t.Fatalf("expected one folder, got %+v", updated.Root.Folders)
	}
	children := updated.Root.Folders[0].Children
	if len(children.Files) != 1 || children.Files[0].Name != "b.txt" {
		t.Fatalf("expected recursed child b.txt, got %+v", children.Files)
	}
}
