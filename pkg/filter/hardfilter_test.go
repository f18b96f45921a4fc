package filter

import "testing"

func TestNullFilter(t *testing.T) {
	f := NullFilter{}
	if !f.Matches("anything/at/all.txt", false) {
		t.Error("null filter rejected a path")
	}
	if !f.DirectoryMightContainMatch("anything") {
		t.Error("null filter pruned a subtree")
	}
}

func TestNameFilterIncludeExclude(t *testing.T) {
	f := NewNameFilter([]string{"*.txt"}, []string{"secret*"}, true)

	if !f.Matches("notes.txt", false) {
		t.Error("expected notes.txt to match")
	}
	if f.Matches("secret.txt", false) {
		t.Error("expected secret.txt to be excluded")
	}
	if f.Matches("notes.bin", false) {
		t.Error("expected notes.bin to be excluded (no include match)")
	}
}

func TestNameFilterNoIncludesMeansAll(t *testing.T) {
	f := NewNameFilter(nil, []string{"*.tmp"}, true)

	if !f.Matches("keep.txt", false) {
		t.Error("expected keep.txt to match with empty include list")
	}
	if f.Matches("scratch.tmp", false) {
		t.Error("expected scratch.tmp to be excluded")
	}
}

func TestNameFilterDirectoryExclusionPrunesSubtree(t *testing.T) {
	f := NewNameFilter(nil, []string{"node_modules/"}, true)

	if f.DirectoryMightContainMatch("node_modules") {
		t.Error("expected node_modules to be pruned")
	}
	if !f.DirectoryMightContainMatch("src") {
		t.Error("expected unrelated directory to remain traversable")
	}
	// A dir-only exclude mask must not match files.
	if !f.Matches("node_modules", false) {
		t.Error("dir-only mask should not exclude a non-directory item")
	}
	if f.Matches("node_modules", true) {
		t.Error("expected node_modules directory itself to be excluded")
	}
}

func TestCompositionFilter(t *testing.T) {
	a := NewNameFilter([]string{"*.txt"}, nil, true)
	b := NewNameFilter(nil, []string{"secret*"}, true)
	composed := CompositionFilter{A: a, B: b}

	if !composed.Matches("notes.txt", false) {
		t.Error("expected notes.txt to match composed filter")
	}
	if composed.Matches("secret.txt", false) {
		t.Error("expected secret.txt to be excluded by composed filter")
	}
	if composed.Matches("notes.bin", false) {
		t.Error("expected notes.bin to be excluded by composed filter")
	}
}

func TestNameFilterCaseSensitivity(t *testing.T) {
	caseSensitive := NewNameFilter([]string{"*.TXT"}, nil, true)
	if caseSensitive.Matches("notes.txt", false) {
		t.Error("expected case-sensitive filter to reject lowercase extension")
	}

	caseInsensitive := NewNameFilter([]string{"*.TXT"}, nil, false)
	if !caseInsensitive.Matches("notes.txt", false) {
		t.Error("expected case-insensitive filter to accept lowercase extension")
	}
}
