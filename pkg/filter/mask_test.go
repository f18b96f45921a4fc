package filter

import "testing"

// TestMatchMask verifies mask matching behavior for '*' and '?' wildcards.
func TestMatchMask(t *testing.T) {
	testCases := []struct {
		mask     string
		name     string
		expected bool
	}{
		{"*.txt", "a.txt", true},
		{"*.txt", "a.bin", false},
		{"*.txt", ".txt", true},
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"a?c", "abbc", false},
		{"*", "anything", true},
		{"*", "", true},
		{"exact", "exact", true},
		{"exact", "Exact", false},
		{"sub/*.txt", "sub/a.txt", true},
		{"sub/*.txt", "other/a.txt", false},
	}

	for _, testCase := range testCases {
		if result := matchMask(testCase.mask, testCase.name, false); result != testCase.expected {
			t.Errorf("matchMask(%q, %q) = %t, expected %t", testCase.mask, testCase.name, result, testCase.expected)
		}
	}
}

// TestMatchMaskFoldCase verifies case-insensitive matching.
func TestMatchMaskFoldCase(t *testing.T) {
	if !matchMask("*.TXT", "a.txt", true) {
		t.Error("expected case-insensitive match to succeed")
	}
	if matchMask("*.TXT", "a.txt", false) {
		t.Error("expected case-sensitive match to fail")
	}
}
