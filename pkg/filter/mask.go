package filter

import (
	"strings"
)

// matchMask reports whether name matches a single FreeFileSync-style mask.
// '*' matches any sequence of runes, including the empty sequence; '?'
// matches exactly one rune. Matching is case-insensitive, mirroring the
// comparison semantics used elsewhere for short names on case-insensitive
// platforms; callers needing case-sensitive matching should lower-case
// neither argument and pass foldCase=false.
func matchMask(mask, name string, foldCase bool) bool {
	if foldCase {
		mask = strings.ToLower(mask)
		name = strings.ToLower(name)
	}
	return matchMaskRunes([]rune(mask), []rune(name))
}

// matchMaskRunes implements the classic backtracking wildcard matcher over
// '*' and '?', operating on rune slices so multi-byte characters are treated
// as single match units.
func matchMaskRunes(mask, name []rune) bool {
	var maskIndex, nameIndex int
	var starIndex = -1
	var matchIndex int

	for nameIndex < len(name) {
		if maskIndex < len(mask) && (mask[maskIndex] == '?' || mask[maskIndex] == name[nameIndex]) {
			maskIndex++
			nameIndex++
		} else if maskIndex < len(mask) && mask[maskIndex] == '*' {
			starIndex = maskIndex
			matchIndex = nameIndex
			maskIndex++
		} else if starIndex != -1 {
			maskIndex = starIndex + 1
			matchIndex++
			nameIndex = matchIndex
		} else {
			return false
		}
	}

	for maskIndex < len(mask) && mask[maskIndex] == '*' {
		maskIndex++
	}

	return maskIndex == len(mask)
}
