package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.ffs_db")
	rightPath := filepath.Join(dir, "right.ffs_db")

	original := sampleTree()
	if err := Save(leftPath, rightPath, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := Load(leftPath, rightPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected found=true after a successful save")
	}
	if !treeEqual(original, loaded) {
		t.Fatalf("loaded tree does not match saved tree:\nsaved:  %+v\nloaded: %+v", original, loaded)
	}
}

func TestLoadReportsNotFoundWhenFilesAbsent(t *testing.T) {
	dir := t.TempDir()
	_, found, err := Load(filepath.Join(dir, "left.ffs_db"), filepath.Join(dir, "right.ffs_db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false when no database files exist")
	}
}

func TestLoadTreatsMismatchedSessionsAsNotFound(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.ffs_db")
	rightPath := filepath.Join(dir, "right.ffs_db")

	if err := Save(leftPath, rightPath, sampleTree()); err != nil {
		t.Fatal(err)
	}
	// Overwrite just the right file with a fresh, differently-sessioned
	// save so the two files no longer agree.
	otherRight := filepath.Join(dir, "other-right.ffs_db")
	if err := Save(filepath.Join(dir, "other-left.ffs_db"), otherRight, sampleTree()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(otherRight)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rightPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, found, err := Load(leftPath, rightPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for mismatched sessions")
	}
}

func TestSaveIsNoOpWhenTreeUnchanged(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.ffs_db")
	rightPath := filepath.Join(dir, "right.ffs_db")

	if err := Save(leftPath, rightPath, sampleTree()); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(leftPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := Save(leftPath, rightPath, sampleTree()); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(leftPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(before) != string(after) {
		t.Error("expected the file to be untouched (same session, same bytes) on a no-op save")
	}
}

func TestSaveRewritesWhenTreeChanges(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.ffs_db")
	rightPath := filepath.Join(dir, "right.ffs_db")

	if err := Save(leftPath, rightPath, sampleTree()); err != nil {
		t.Fatal(err)
	}

	changed := sampleTree()
	changed.Root.Files[0].Left.Size = 999

	if err := Save(leftPath, rightPath, changed); err != nil {
		t.Fatal(err)
	}

	loaded, found, err := Load(leftPath, rightPath)
	if err != nil || !found {
		t.Fatalf("load after change: found=%v err=%v", found, err)
	}
	if loaded.Root.Files[0].Left.Size != 999 {
		t.Errorf("expected updated size to persist, got %d", loaded.Root.Files[0].Left.Size)
	}
}

func TestWriteTransactionalLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.ffs_db")
	rightPath := filepath.Join(dir, "right.ffs_db")

	if err := Save(leftPath, rightPath, sampleTree()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(leftPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected left temp file to be gone after a successful save")
	}
	if _, err := os.Stat(rightPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected right temp file to be gone after a successful save")
	}
}
