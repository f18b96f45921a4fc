package filesystem

import (
	"os"
	"sort"
)

// SymlinkPolicy governs how traversal treats symbolic links (spec §4.4).
type SymlinkPolicy uint8

const (
	// SymlinkPolicyDirect compares symlinks as an opaque (target, mtime)
	// pair without following them.
	SymlinkPolicyDirect SymlinkPolicy = iota
	// SymlinkPolicyFollow replaces a symlink with the file or directory it
	// references at traversal time.
	SymlinkPolicyFollow
	// SymlinkPolicyExclude omits symlinks from the tree entirely.
	SymlinkPolicyExclude
)

// ErrorDecision is the driver's answer to a traversal error (spec §5:
// "every traversal error is first offered to the driver as retry-or-ignore").
type ErrorDecision uint8

const (
	// ErrorRetry asks the traversal to retry the failed operation.
	ErrorRetry ErrorDecision = iota
	// ErrorIgnore asks the traversal to record the error and continue.
	ErrorIgnore
)

// Visitor receives callbacks during traversal (spec §4.1). Paths passed to
// callbacks are relative to the traversal root, using '/' as the separator
// regardless of platform.
type Visitor interface {
	// OnFile is invoked for each regular file encountered.
	OnFile(relative string, descriptor FileDescriptor) error
	// OnSymlink is invoked for each symbolic link encountered under the
	// "direct" symlink policy (a broken target under "follow" is reported
	// through OnItemError instead).
	OnSymlink(relative string, descriptor SymlinkDescriptor) error
	// OnDirectory is invoked for each directory encountered. If recurse is
	// true on return, traversal descends into it.
	OnDirectory(relative string, descriptor FolderDescriptor) (recurse bool, err error)
	// OnDirError is invoked when reading a directory's contents fails. The
	// returned decision controls whether traversal retries the read or
	// records the error and prunes the subtree (spec §7 path-level error).
	OnDirError(relative string, err error) ErrorDecision
	// OnItemError is invoked when stat'ing or reading a single entry fails.
	// The returned decision controls whether traversal retries the item or
	// records the error and skips it (spec §7 item-level error).
	OnItemError(relative string, err error) ErrorDecision
}

// shouldSkipArtifact reports whether name is an on-disk artifact of this
// module itself (database or lock file) and must never enter the paired
// tree (spec §6 "filenames to skip").
func shouldSkipArtifact(name string) bool {
	return hasSuffix(name, ".ffs_db") || hasSuffix(name, ".ffs_lock")
}

func hasSuffix(name, suffix string) bool {
	if len(name) < len(suffix) {
		return false
	}
	return name[len(name)-len(suffix):] == suffix
}

// Traverse performs a blocking, depth-first, left-to-right walk of root,
// delegating to visitor for every encountered item (spec §4.1, §5). It is
// the abstract filesystem interface's concrete, OS-backed realization; it
// never opens a file for reading its content.
func Traverse(root string, policy SymlinkPolicy, visitor Visitor) error {
	return traverseDirectory(root, "", policy, visitor)
}

// AppendRelative joins a base absolute path with a root-relative path (spec
// §4.1 "append_relative").
func AppendRelative(base, relative string) string {
	if relative == "" {
		return base
	}
	return base + string(os.PathSeparator) + osPath(relative)
}

func traverseDirectory(root, relative string, policy SymlinkPolicy, visitor Visitor) error {
	absolute := AppendRelative(root, relative)

	var entries []os.DirEntry
	for {
		var err error
		entries, err = os.ReadDir(absolute)
		if err == nil {
			break
		}
		if visitor.OnDirError(relative, err) == ErrorRetry {
			continue
		}
		return nil
	}

	// Traversal order must be deterministic (design notes: "sorted-by-short-
	// name map for the traversal-raw layer").
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		if shouldSkipArtifact(name) {
			continue
		}
		itemRelative := PathJoin(relative, name)
		itemAbsolute := AppendRelative(root, itemRelative)

		var info os.FileInfo
		var err error
		for {
			info, err = os.Lstat(itemAbsolute)
			if err == nil {
				break
			}
			if visitor.OnItemError(itemRelative, err) == ErrorRetry {
				continue
			}
			break
		}
		if err != nil {
			continue
		}

		mode := info.Mode()
		switch {
		case mode&os.ModeSymlink != 0:
			if err := visitSymlink(root, itemRelative, itemAbsolute, info, policy, visitor); err != nil {
				return err
			}
		case mode.IsDir():
			if err := visitDirectory(root, itemRelative, info, FolderDescriptor{}, policy, visitor); err != nil {
				return err
			}
		case mode.IsRegular():
			descriptor := FileDescriptor{
				ModificationTime: info.ModTime().Unix(),
				Size:             uint64(info.Size()),
				Identity:         identityFromInfo(info),
			}
			if err := visitor.OnFile(itemRelative, descriptor); err != nil {
				return err
			}
		default:
			// Devices, sockets, and other special files are neither
			// synchronizable content nor directories; they're silently
			// skipped rather than surfaced as errors.
		}
	}

	return nil
}

func visitDirectory(root, relative string, _ os.FileInfo, descriptor FolderDescriptor, policy SymlinkPolicy, visitor Visitor) error {
	recurse, err := visitor.OnDirectory(relative, descriptor)
	if err != nil {
		return err
	}
	if !recurse {
		return nil
	}
	return traverseDirectory(root, relative, policy, visitor)
}

func visitSymlink(root, relative, absolute string, info os.FileInfo, policy SymlinkPolicy, visitor Visitor) error {
	switch policy {
	case SymlinkPolicyExclude:
		return nil
	case SymlinkPolicyDirect:
		target, err := os.Readlink(absolute)
		if err != nil {
			if visitor.OnItemError(relative, err) == ErrorRetry {
				target, err = os.Readlink(absolute)
			}
			if err != nil {
				return nil
			}
		}
		descriptor := SymlinkDescriptor{
			ModificationTime: info.ModTime().Unix(),
			Target:           target,
		}
		return visitor.OnSymlink(relative, descriptor)
	case SymlinkPolicyFollow:
		target, err := os.Stat(absolute)
		if err != nil {
			// A broken symlink under "follow" surfaces as an item error
			// (spec §4.4).
			visitor.OnItemError(relative, err)
			return nil
		}
		if target.IsDir() {
			return visitDirectory(root, relative, target, FolderDescriptor{FollowedSymlink: true}, policy, visitor)
		}
		descriptor := FileDescriptor{
			ModificationTime: target.ModTime().Unix(),
			Size:             uint64(target.Size()),
			Identity:         identityFromInfo(target),
			FollowedSymlink:  true,
		}
		return visitor.OnFile(relative, descriptor)
	default:
		return nil
	}
}

// osPath converts a '/'-separated relative path to the platform's native
// separator for filesystem calls.
func osPath(relative string) string {
	if os.PathSeparator == '/' {
		return relative
	}
	converted := make([]byte, len(relative))
	for i := 0; i < len(relative); i++ {
		if relative[i] == '/' {
			converted[i] = os.PathSeparator
		} else {
			converted[i] = relative[i]
		}
	}
	return string(converted)
}
