package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filesystem"
	"github.com/dothezz/foldersync/pkg/filter"
)

func alwaysRetryOnce() ErrorDecider {
	tried := make(map[string]bool)
	return func(relative string, _ error, isDir bool) filesystem.ErrorDecision {
		key := relative
		if tried[key] {
			return filesystem.ErrorIgnore
		}
		tried[key] = true
		return filesystem.ErrorRetry
	}
}

func TestBuildingVisitorAssemblesNestedContainer(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}

	visitor := newBuildingVisitor(filter.NullFilter{}, alwaysRetryOnce(), core.Left)
	if err := filesystem.Traverse(root, filesystem.SymlinkPolicyDirect, visitor); err != nil {
		t.Fatalf("traverse: %v", err)
	}

	if len(visitor.root.files) != 1 || visitor.root.files[0].name != "a.txt" {
		t.Fatalf("expected a.txt at root, got %+v", visitor.root.files)
	}
	if len(visitor.root.folders) != 1 || visitor.root.folders[0].name != "sub" {
		t.Fatalf("expected sub folder at root, got %+v", visitor.root.folders)
	}
	children := visitor.root.folders[0].children
	if len(children.files) != 1 || children.files[0].name != "b.txt" {
		t.Fatalf("expected b.txt under sub, got %+v", children.files)
	}
}

func TestBuildingVisitorHonorsHardFilterExclude(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "skip.log"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	hardFilter := filter.NewNameFilter([]string{"*"}, []string{"*.log"}, true)
	visitor := newBuildingVisitor(hardFilter, alwaysRetryOnce(), core.Left)
	if err := filesystem.Traverse(root, filesystem.SymlinkPolicyDirect, visitor); err != nil {
		t.Fatalf("traverse: %v", err)
	}

	if len(visitor.root.files) != 1 || visitor.root.files[0].name != "keep.txt" {
		t.Fatalf("expected only keep.txt, got %+v", visitor.root.files)
	}
}
