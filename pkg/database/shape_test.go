package database

import (
	"reflect"
	"testing"

	"github.com/dothezz/foldersync/pkg/filesystem"
)

func sampleTree() Tree {
	return Tree{
		Root: Directory{
			Files: []FileEntry{
				{Name: "a.txt", Left: filesystem.FileDescriptor{Size: 1}, Right: filesystem.FileDescriptor{Size: 1}},
			},
			Symlinks: []SymlinkEntry{
				{Name: "link", Left: filesystem.SymlinkDescriptor{Target: "x"}, Right: filesystem.SymlinkDescriptor{Target: "x"}},
			},
			Folders: []FolderEntry{
				{
					Name:   "sub",
					Status: StatusInSync,
					Children: Directory{
						Files: []FileEntry{
							{Name: "b.txt", Left: filesystem.FileDescriptor{Size: 2}, Right: filesystem.FileDescriptor{Size: 2}},
						},
						Folders: []FolderEntry{
							{Name: "deep", Status: StatusStrawMan},
						},
					},
				},
			},
		},
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	original := sampleTree()
	shared, left, right := split(original)
	rebuilt := join(shared, left, right)

	if !reflect.DeepEqual(original, rebuilt) {
		t.Fatalf("round trip mismatch:\noriginal: %+v\nrebuilt:  %+v", original, rebuilt)
	}
}

func TestSplitFlattensEveryNode(t *testing.T) {
	shared, _, _ := split(sampleTree())
	// a.txt, link, sub, sub/b.txt, sub/deep.
	if len(shared.Nodes) != 5 {
		t.Fatalf("expected 5 flattened nodes, got %d", len(shared.Nodes))
	}
}
