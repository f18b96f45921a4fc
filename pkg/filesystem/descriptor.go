package filesystem

// FileDescriptor carries the metadata the comparison engine needs for a
// regular file (spec §3).
type FileDescriptor struct {
	// ModificationTime is the last-write time, in seconds since the Unix
	// epoch.
	ModificationTime int64
	// Size is the file size in bytes.
	Size uint64
	// Identity is the file's opaque identity, if one could be determined.
	Identity Identity
	// FollowedSymlink indicates that this descriptor was synthesized by
	// following a symlink under the "follow" symlink policy rather than
	// being read directly from a regular file.
	FollowedSymlink bool
}

// EnsureValid verifies model invariants about the descriptor.
func (d FileDescriptor) EnsureValid() error {
	return nil
}

// Equal performs an exact field-wise comparison of two file descriptors
// (modification time, size, and identity).
func (d FileDescriptor) Equal(other FileDescriptor) bool {
	return d.ModificationTime == other.ModificationTime &&
		d.Size == other.Size &&
		d.Identity == other.Identity
}

// SymlinkDescriptor carries the metadata the comparison engine needs for a
// symbolic link compared under the "direct" symlink policy (spec §3, §4.4).
type SymlinkDescriptor struct {
	// ModificationTime is the last-write time of the link itself (never the
	// target), in seconds since the Unix epoch.
	ModificationTime int64
	// Target is the link's target path, treated as an opaque string for
	// comparison purposes.
	Target string
}

// EnsureValid verifies model invariants about the descriptor.
func (d SymlinkDescriptor) EnsureValid() error {
	return nil
}

// Equal performs a field-wise comparison of two symlink descriptors.
func (d SymlinkDescriptor) Equal(other SymlinkDescriptor) bool {
	return d.ModificationTime == other.ModificationTime && d.Target == other.Target
}

// FolderDescriptor carries the metadata the comparison engine needs for a
// directory (spec §3).
type FolderDescriptor struct {
	// FollowedSymlink indicates that this descriptor was synthesized by
	// following a symlink under the "follow" symlink policy.
	FollowedSymlink bool
}

// EnsureValid verifies model invariants about the descriptor.
func (d FolderDescriptor) EnsureValid() error {
	return nil
}

// Equal performs a field-wise comparison of two folder descriptors.
func (d FolderDescriptor) Equal(other FolderDescriptor) bool {
	return d.FollowedSymlink == other.FollowedSymlink
}
