package filesystem

import (
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CaseSensitiveByDefault reports whether the current platform's filesystems
// are case-sensitive by default. POSIX filesystems (Linux) are; Windows and
// macOS (HFS+/APFS default configuration) are not. This only sets the
// default for a base-pair; it is not a hard platform guarantee.
var CaseSensitiveByDefault = runtime.GOOS == "linux"

// NormalizeName canonicalizes a short name for comparison purposes by
// applying Unicode NFC normalization, so that filesystems which decompose
// names on write (notably macOS's HFS+/APFS) don't produce spurious
// different-case-only mismatches during pairing (spec §4.3 "name comparison
// uses the case-sensitivity policy of the path primitives").
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// EqualNames compares two short names under the given case-sensitivity
// policy, after Unicode normalization.
func EqualNames(a, b string, caseSensitive bool) bool {
	a, b = NormalizeName(a), NormalizeName(b)
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
