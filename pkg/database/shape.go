package database

import "github.com/dothezz/foldersync/pkg/filesystem"

// The on-disk format splits a session's state across three sub-streams
// (spec §4.6): a left sub-stream (left-side descriptors only), a right
// sub-stream (right-side descriptors only), and a shared sub-stream (the
// tree's shape: names, kinds, order, and folder status, with no
// descriptors). Reconstructing a Tree requires all three. This file
// converts between the in-memory Tree and that three-way split.

const (
	kindFile    = "file"
	kindSymlink = "symlink"
	kindFolder  = "folder"
)

// shapeNode is one entry in the shared sub-stream: a path and what kind of
// thing lives there, in the order it appeared under its parent.
type shapeNode struct {
	Parent string `json:"parent"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Status string `json:"status,omitempty"`
}

// sharedShape is the full shared sub-stream payload.
type sharedShape struct {
	Nodes []shapeNode `json:"nodes"`
}

// sideShape is one side's sub-stream payload: descriptors keyed by the full
// path assigned in the shared shape.
type sideShape struct {
	Files    map[string]filesystem.FileDescriptor    `json:"files,omitempty"`
	Symlinks map[string]filesystem.SymlinkDescriptor `json:"symlinks,omitempty"`
	Folders  map[string]filesystem.FolderDescriptor  `json:"folders,omitempty"`
}

// split decomposes a Tree into its three sub-stream payloads.
func split(tree Tree) (sharedShape, sideShape, sideShape) {
	shared := sharedShape{}
	left := sideShape{
		Files:    make(map[string]filesystem.FileDescriptor),
		Symlinks: make(map[string]filesystem.SymlinkDescriptor),
		Folders:  make(map[string]filesystem.FolderDescriptor),
	}
	right := sideShape{
		Files:    make(map[string]filesystem.FileDescriptor),
		Symlinks: make(map[string]filesystem.SymlinkDescriptor),
		Folders:  make(map[string]filesystem.FolderDescriptor),
	}
	splitDirectory("", tree.Root, &shared, &left, &right)
	return shared, left, right
}

func splitDirectory(prefix string, dir Directory, shared *sharedShape, left, right *sideShape) {
	for _, f := range dir.Files {
		path := childPath(prefix, f.Name)
		shared.Nodes = append(shared.Nodes, shapeNode{Parent: prefix, Name: f.Name, Kind: kindFile})
		left.Files[path] = f.Left
		right.Files[path] = f.Right
	}
	for _, s := range dir.Symlinks {
		path := childPath(prefix, s.Name)
		shared.Nodes = append(shared.Nodes, shapeNode{Parent: prefix, Name: s.Name, Kind: kindSymlink})
		left.Symlinks[path] = s.Left
		right.Symlinks[path] = s.Right
	}
	for _, folder := range dir.Folders {
		path := childPath(prefix, folder.Name)
		shared.Nodes = append(shared.Nodes, shapeNode{
			Parent: prefix,
			Name:   folder.Name,
			Kind:   kindFolder,
			Status: folder.Status.String(),
		})
		left.Folders[path] = folder.Left
		right.Folders[path] = folder.Right
		splitDirectory(path, folder.Children, shared, left, right)
	}
}

func childPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return filesystem.PathJoin(prefix, name)
}

// join reassembles a Tree from its three sub-stream payloads.
func join(shared sharedShape, left, right sideShape) Tree {
	directories := map[string]*Directory{"": {}}

	for _, node := range shared.Nodes {
		parent, ok := directories[node.Parent]
		if !ok {
			// A node whose parent never appeared is orphaned data from a
			// corrupt or foreign stream; skip rather than panic.
			continue
		}
		path := childPath(node.Parent, node.Name)
		switch node.Kind {
		case kindFile:
			parent.Files = append(parent.Files, FileEntry{
				Name:  node.Name,
				Left:  left.Files[path],
				Right: right.Files[path],
			})
		case kindSymlink:
			parent.Symlinks = append(parent.Symlinks, SymlinkEntry{
				Name:  node.Name,
				Left:  left.Symlinks[path],
				Right: right.Symlinks[path],
			})
		case kindFolder:
			status := StatusInSync
			if node.Status == StatusStrawMan.String() {
				status = StatusStrawMan
			}
			entry := FolderEntry{
				Name:   node.Name,
				Left:   left.Folders[path],
				Right:  right.Folders[path],
				Status: status,
			}
			parent.Folders = append(parent.Folders, entry)
			directories[path] = &parent.Folders[len(parent.Folders)-1].Children
		}
	}

	return Tree{Root: *directories[""]}
}
