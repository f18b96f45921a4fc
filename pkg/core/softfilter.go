package core

import "github.com/dothezz/foldersync/pkg/filesystem"

// ApplySoftFilter walks base's already-merged, already-categorized tree and
// toggles each pair's Active flag against base.SoftFilter (spec §4.2: the
// soft filter is applied only once the paired tree exists, since it may
// legitimately accept one side of a pair while rejecting the other). It
// must run after a scan's merge/categorize pass has populated
// Files/Symlinks/Folders and before PropagateContainers and
// BuildOperationStream observe Active, mirroring PropagateContainers's own
// shape as a post-scan, whole-tree pass. A trivial filter leaves every pair
// active and does no work.
func ApplySoftFilter(base *BasePair) {
	if base.SoftFilter.IsTrivial() {
		return
	}
	for _, file := range base.Files {
		applyFileSoftFilter(base, file)
	}
	for _, symlink := range base.Symlinks {
		applySymlinkSoftFilter(base, symlink)
	}
	for _, folder := range base.Folders {
		applyFolderSoftFilter(base, folder)
	}
}

func applyFileSoftFilter(base *BasePair, file *FilePair) {
	file.Active = sideAcceptsFile(base, file.Left, file.ExistsOn(Left)) &&
		sideAcceptsFile(base, file.Right, file.ExistsOn(Right))
}

func sideAcceptsFile(base *BasePair, descriptor filesystem.FileDescriptor, exists bool) bool {
	if !exists {
		return true
	}
	return base.SoftFilter.AcceptsFile(descriptor.ModificationTime, descriptor.Size)
}

func applySymlinkSoftFilter(base *BasePair, symlink *SymlinkPair) {
	symlink.Active = sideAcceptsSymlinkTime(base, symlink.Left.ModificationTime, symlink.ExistsOn(Left)) &&
		sideAcceptsSymlinkTime(base, symlink.Right.ModificationTime, symlink.ExistsOn(Right))
}

// sideAcceptsSymlinkTime applies just the time-from half of the soft filter
// (symlinks, like folders, have no size to test against MinSize/MaxSize).
func sideAcceptsSymlinkTime(base *BasePair, modificationTime int64, exists bool) bool {
	if !exists {
		return true
	}
	return base.SoftFilter.TimeFrom == 0 || modificationTime >= base.SoftFilter.TimeFrom
}

// applyFolderSoftFilter resolves children first (post-order, the same
// ordering PropagateContainers uses), then resolves the folder itself: its
// own standing against the filter's time threshold, using the most recent
// modification time among its direct children as its own effective
// modification time (FolderDescriptor itself carries none, spec §3), and
// whether FolderMatch requires it to be deactivated alongside a
// non-matching descendant regardless of its own standing.
func applyFolderSoftFilter(base *BasePair, folder *FolderPair) {
	descendantDeactivated := false

	for _, file := range folder.Files {
		applyFileSoftFilter(base, file)
		descendantDeactivated = descendantDeactivated || !file.Active
	}
	for _, symlink := range folder.Symlinks {
		applySymlinkSoftFilter(base, symlink)
		descendantDeactivated = descendantDeactivated || !symlink.Active
	}
	for _, child := range folder.Folders {
		applyFolderSoftFilter(base, child)
		descendantDeactivated = descendantDeactivated || !child.Active
	}

	folder.Active = base.SoftFilter.AcceptsFolder(folderModificationTime(folder))
	if base.SoftFilter.FolderMatch && descendantDeactivated {
		folder.Active = false
	}
}

// folderModificationTime approximates a folder's own modification time as
// the latest modification time among its direct file and symlink children,
// since FolderDescriptor does not itself carry one.
func folderModificationTime(folder *FolderPair) int64 {
	var latest int64
	for _, file := range folder.Files {
		if file.Left.ModificationTime > latest {
			latest = file.Left.ModificationTime
		}
		if file.Right.ModificationTime > latest {
			latest = file.Right.ModificationTime
		}
	}
	for _, symlink := range folder.Symlinks {
		if symlink.Left.ModificationTime > latest {
			latest = symlink.Left.ModificationTime
		}
		if symlink.Right.ModificationTime > latest {
			latest = symlink.Right.ModificationTime
		}
	}
	return latest
}
