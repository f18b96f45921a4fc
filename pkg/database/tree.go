package database

import "github.com/dothezz/foldersync/pkg/filesystem"

// FolderStatus records whether a recorded folder was itself synchronized or
// is only present to anchor children that were (spec §4.6 "straw_man").
type FolderStatus uint8

const (
	// StatusInSync indicates the folder itself was in sync at last write.
	StatusInSync FolderStatus = iota
	// StatusStrawMan indicates the folder was not itself in sync but is
	// recorded anyway because one or more descendants are.
	StatusStrawMan
)

// String implements fmt.Stringer.
func (s FolderStatus) String() string {
	if s == StatusStrawMan {
		return "straw_man"
	}
	return "in_sync"
}

// FileEntry is a recorded file: how it looked on each side the last time it
// was in sync.
type FileEntry struct {
	Name         string
	Left, Right  filesystem.FileDescriptor
}

// SymlinkEntry is a recorded symlink.
type SymlinkEntry struct {
	Name        string
	Left, Right filesystem.SymlinkDescriptor
}

// FolderEntry is a recorded folder, with its own recursively recorded
// children.
type FolderEntry struct {
	Name        string
	Left, Right filesystem.FolderDescriptor
	Status      FolderStatus
	Children    Directory
}

// Directory is an ordered record of a directory's entries (spec §4.6: "the
// tree mirrors the filesystem: per directory an ordered map each of files,
// symlinks, sub-directories"). Order here is insertion order, preserved
// through encode/decode.
type Directory struct {
	Files    []FileEntry
	Symlinks []SymlinkEntry
	Folders  []FolderEntry
}

// Tree is the full recorded state for one base-pair: the root directory.
type Tree struct {
	Root Directory
}
