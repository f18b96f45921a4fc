package filter

// SoftFilter is applied only after the paired tree exists (spec §4.2): it
// deactivates rather than removes items, and may legitimately accept one
// side of a pair while rejecting the other.
type SoftFilter struct {
	// TimeFrom is a Unix-second threshold; items modified at or after this
	// time pass. Zero means no threshold.
	TimeFrom int64
	// MinSize is the minimum size, in bytes, for a file to pass.
	MinSize uint64
	// MaxSize is the maximum size, in bytes, for a file to pass. Zero means
	// unlimited.
	MaxSize uint64
	// FolderMatch, if true, requires folders to also satisfy the filter's
	// size/time criteria (meaningless for folders by themselves, but
	// controls whether folder pairs are deactivated alongside non-matching
	// descendants).
	FolderMatch bool
}

// IsTrivial reports whether the filter has no effect (accepts everything).
func (f SoftFilter) IsTrivial() bool {
	return f.TimeFrom == 0 && f.MinSize == 0 && f.MaxSize == 0 && !f.FolderMatch
}

// Combine intersects two soft filters (spec §4.2: "max(time_from),
// max(min_size), min(max_size), and(folder_match)").
func (f SoftFilter) Combine(other SoftFilter) SoftFilter {
	combined := SoftFilter{
		TimeFrom:    maxInt64(f.TimeFrom, other.TimeFrom),
		MinSize:     maxUint64(f.MinSize, other.MinSize),
		FolderMatch: f.FolderMatch && other.FolderMatch,
	}
	combined.MaxSize = minNonZeroUint64(f.MaxSize, other.MaxSize)
	return combined
}

// AcceptsFile reports whether a file with the given modification time and
// size passes the filter.
func (f SoftFilter) AcceptsFile(modificationTime int64, size uint64) bool {
	if f.TimeFrom != 0 && modificationTime < f.TimeFrom {
		return false
	}
	if size < f.MinSize {
		return false
	}
	if f.MaxSize != 0 && size > f.MaxSize {
		return false
	}
	return true
}

// AcceptsFolder reports whether a folder passes the filter. Folders have no
// size, so they're only subject to the time threshold, and only when
// FolderMatch requests that folders be held to the same standard as files.
func (f SoftFilter) AcceptsFolder(modificationTime int64) bool {
	if !f.FolderMatch {
		return true
	}
	if f.TimeFrom != 0 && modificationTime < f.TimeFrom {
		return false
	}
	return true
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// minNonZeroUint64 returns the smaller of a and b, treating zero as
// "unlimited" so it never wins against a genuine limit.
func minNonZeroUint64(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}
