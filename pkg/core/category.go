package core

import (
	"github.com/dothezz/foldersync/pkg/filesystem"
)

// Category is the result of comparing the two sides of a paired item (spec
// §4.4). It is a closed set of eight values.
type Category uint8

const (
	// CategoryEqual indicates both sides are considered equal.
	CategoryEqual Category = iota
	// CategoryLeftOnly indicates the item exists only on the left.
	CategoryLeftOnly
	// CategoryRightOnly indicates the item exists only on the right.
	CategoryRightOnly
	// CategoryLeftNewer indicates the left side is newer.
	CategoryLeftNewer
	// CategoryRightNewer indicates the right side is newer.
	CategoryRightNewer
	// CategoryDifferentContent indicates the sides have different content.
	CategoryDifferentContent
	// CategoryDifferentMetadata indicates content is equal but metadata
	// (short name case, or timestamp under the "by content" variant)
	// differs.
	CategoryDifferentMetadata
	// CategoryConflict indicates the comparison could not resolve a single
	// winner (e.g. same timestamp, different size).
	CategoryConflict
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryEqual:
		return "equal"
	case CategoryLeftOnly:
		return "left_only"
	case CategoryRightOnly:
		return "right_only"
	case CategoryLeftNewer:
		return "left_newer"
	case CategoryRightNewer:
		return "right_newer"
	case CategoryDifferentContent:
		return "different_content"
	case CategoryDifferentMetadata:
		return "different_metadata"
	case CategoryConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// CompareBy selects how the categorizer evaluates two present-on-both-sides
// descriptors (spec §4.4). This is the per-base-pair "comparison variant",
// distinct from the synchronization variant (mirror/update/two-way/custom)
// that the direction resolver consumes.
type CompareBy uint8

const (
	// CompareByTimeAndSize categorizes using modification time and size
	// only, never reading file content.
	CompareByTimeAndSize CompareBy = iota
	// CompareByContent categorizes using size first, then a content-equality
	// probe supplied by an external collaborator (spec §4.4: "fed by the
	// categorizer").
	CompareByContent
)

// ContentComparator performs the external content-equality probe that the
// "by content" compare mode delegates to (spec §4.1: "content comparison is
// delegated to the executor or to a binary-compare helper").
type ContentComparator func(leftPath, rightPath string) (equal bool, err error)

// TimeEqual determines whether two modification times should be treated as
// equal for categorization purposes, honoring the tolerance and the ignored
// daylight-saving time-shift offsets (spec §4.4, §12). The database package
// reuses it to classify a file/symlink side against prior state under the
// same tolerance rules (spec §4.5 step 3).
func TimeEqual(left, right int64, toleranceSeconds int64, ignoredShiftMinutes []int) bool {
	diff := left - right
	if diff < 0 {
		diff = -diff
	}
	if diff <= toleranceSeconds {
		return true
	}
	for _, offsetMinutes := range ignoredShiftMinutes {
		offsetSeconds := int64(offsetMinutes) * 60
		if offsetSeconds <= 0 {
			continue
		}
		if diff%offsetSeconds == 0 {
			return true
		}
	}
	return false
}

// CategorizeFiles categorizes a file pair present on both sides (spec
// §4.4). leftName/rightName are the short names on each side, used to
// detect a case-only difference.
func CategorizeFiles(
	left, right filesystem.FileDescriptor,
	leftName, rightName string,
	compareBy CompareBy,
	toleranceSeconds int64,
	ignoredShiftMinutes []int,
	contentEqual ContentComparator,
	leftPath, rightPath string,
) (Category, error) {
	nameMatches := filesystem.EqualNames(leftName, rightName, true)

	switch compareBy {
	case CompareByTimeAndSize:
		if left.Size != right.Size {
			return CategoryConflict, nil
		}
		if TimeEqual(left.ModificationTime, right.ModificationTime, toleranceSeconds, ignoredShiftMinutes) {
			if nameMatches {
				return CategoryEqual, nil
			}
			return CategoryDifferentMetadata, nil
		}
		if left.ModificationTime > right.ModificationTime {
			return CategoryLeftNewer, nil
		}
		return CategoryRightNewer, nil
	case CompareByContent:
		if left.Size != right.Size {
			return CategoryDifferentContent, nil
		}
		if contentEqual == nil {
			return CategoryConflict, nil
		}
		equal, err := contentEqual(leftPath, rightPath)
		if err != nil {
			return CategoryConflict, err
		}
		if !equal {
			return CategoryDifferentContent, nil
		}
		if !nameMatches || !TimeEqual(left.ModificationTime, right.ModificationTime, toleranceSeconds, ignoredShiftMinutes) {
			return CategoryDifferentMetadata, nil
		}
		return CategoryEqual, nil
	default:
		return CategoryConflict, nil
	}
}

// CategorizeSymlinks categorizes a symlink pair present on both sides,
// compared as an opaque (target, mtime) pair under the "direct" symlink
// policy (spec §4.4).
func CategorizeSymlinks(left, right filesystem.SymlinkDescriptor, leftName, rightName string, toleranceSeconds int64, ignoredShiftMinutes []int) Category {
	if left.Target != right.Target {
		return CategoryDifferentContent
	}
	nameMatches := filesystem.EqualNames(leftName, rightName, true)
	if TimeEqual(left.ModificationTime, right.ModificationTime, toleranceSeconds, ignoredShiftMinutes) && nameMatches {
		return CategoryEqual
	}
	return CategoryDifferentMetadata
}

// CategorizeFolders categorizes a folder pair present on both sides. Folder
// pairs only ever take {equal, different_metadata} when present on both
// sides (spec §4.4: "Folder pairs only take values in {left_only,
// right_only, equal, different_metadata}").
func CategorizeFolders(leftName, rightName string) Category {
	if filesystem.EqualNames(leftName, rightName, true) {
		return CategoryEqual
	}
	return CategoryDifferentMetadata
}
