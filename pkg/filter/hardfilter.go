package filter

import (
	"strings"

	"github.com/dothezz/foldersync/pkg/filesystem"
)

// HardFilter decides, per relative path, whether an item is in scope for
// traversal (spec §4.2). It is applied during traversal, so that excluded
// directories can be pruned without being read.
type HardFilter interface {
	// Matches reports whether the item at relativePath is included.
	Matches(relativePath string, isDir bool) bool
	// DirectoryMightContainMatch is the traversal-pruning fast path (spec
	// §4.2, §12 "sub_items_might_match"): it reports false only when the
	// filter can prove that nothing under relativePath could ever match,
	// letting the traversal layer skip reading the directory at all.
	DirectoryMightContainMatch(relativePath string) bool
}

// NullFilter accepts every item and never prunes a subtree.
type NullFilter struct{}

// Matches implements HardFilter.Matches.
func (NullFilter) Matches(string, bool) bool { return true }

// DirectoryMightContainMatch implements HardFilter.DirectoryMightContainMatch.
func (NullFilter) DirectoryMightContainMatch(string) bool { return true }

// mask is a single parsed include/exclude pattern.
type mask struct {
	// pattern is the mask text with any leading/trailing separator removed.
	pattern string
	// anchored is true if the original mask contained a path separator,
	// meaning it must match against the full relative path rather than just
	// the base name.
	anchored bool
	// dirOnly is true if the mask had a trailing separator, restricting it
	// to matching directories only.
	dirOnly bool
}

func parseMask(raw string) mask {
	m := raw
	dirOnly := strings.HasSuffix(m, "/")
	if dirOnly {
		m = strings.TrimSuffix(m, "/")
	}
	anchored := strings.Contains(strings.TrimPrefix(m, "/"), "/")
	m = strings.TrimPrefix(m, "/")
	return mask{pattern: m, anchored: anchored, dirOnly: dirOnly}
}

func (m mask) matches(relativePath string, isDir bool, caseSensitive bool) bool {
	if m.dirOnly && !isDir {
		return false
	}
	if m.anchored {
		return matchMask(m.pattern, relativePath, !caseSensitive)
	}
	return matchMask(m.pattern, filesystem.PathBase(relativePath), !caseSensitive)
}

// NameFilter implements HardFilter using include and exclude mask lists
// (spec §4.2): an item is in scope if it matches at least one include mask
// (or the include list is empty) and matches no exclude mask.
type NameFilter struct {
	includes      []mask
	excludes      []mask
	caseSensitive bool
}

// NewNameFilter constructs a NameFilter from raw include/exclude mask
// strings, using caseSensitive to decide comparison semantics (spec §4.3
// "name comparison uses the case-sensitivity policy of the path
// primitives").
func NewNameFilter(includeMasks, excludeMasks []string, caseSensitive bool) *NameFilter {
	f := &NameFilter{caseSensitive: caseSensitive}
	for _, raw := range includeMasks {
		f.includes = append(f.includes, parseMask(raw))
	}
	for _, raw := range excludeMasks {
		f.excludes = append(f.excludes, parseMask(raw))
	}
	return f
}

// Matches implements HardFilter.Matches.
func (f *NameFilter) Matches(relativePath string, isDir bool) bool {
	if len(f.includes) > 0 {
		included := false
		for _, m := range f.includes {
			if m.matches(relativePath, isDir, f.caseSensitive) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, m := range f.excludes {
		if m.matches(relativePath, isDir, f.caseSensitive) {
			return false
		}
	}
	return true
}

// DirectoryMightContainMatch implements HardFilter.DirectoryMightContainMatch.
// A directory can be proven empty of matches only when it is itself excluded
// by a directory-only exclude mask that matches it exactly — excluding a
// directory necessarily excludes its entire subtree (spec §4.2).
func (f *NameFilter) DirectoryMightContainMatch(relativePath string) bool {
	for _, m := range f.excludes {
		if m.dirOnly && m.matches(relativePath, true, f.caseSensitive) {
			return false
		}
	}
	return true
}

// CompositionFilter combines two hard filters with AND semantics (spec
// §4.2's "composition" variant).
type CompositionFilter struct {
	A, B HardFilter
}

// Matches implements HardFilter.Matches.
func (f CompositionFilter) Matches(relativePath string, isDir bool) bool {
	return f.A.Matches(relativePath, isDir) && f.B.Matches(relativePath, isDir)
}

// DirectoryMightContainMatch implements HardFilter.DirectoryMightContainMatch.
func (f CompositionFilter) DirectoryMightContainMatch(relativePath string) bool {
	return f.A.DirectoryMightContainMatch(relativePath) && f.B.DirectoryMightContainMatch(relativePath)
}
