package main

import (
	"os"
	"testing"

	"github.com/dothezz/foldersync/pkg/core"
)

func TestLockPathAppendsSentinelFileName(t *testing.T) {
	got := lockPath("/home/user/left")
	want := "/home/user/left" + string(os.PathSeparator) + lockFileName
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBaseNameCombinesBothPaths(t *testing.T) {
	base := &core.BasePair{LeftPath: "/a", RightPath: "/b"}
	if got, want := baseName(base), "/a::/b"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
