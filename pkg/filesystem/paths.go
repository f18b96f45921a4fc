package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// FolderSyncDataDirectoryName is the name of the foldersync state
	// directory inside the user's home directory. The in-sync databases and
	// the directory lock files are not kept there; both live inside the
	// synchronized base directories themselves.
	FolderSyncDataDirectoryName = ".foldersync"

	// GlobalConfigurationName is the name of the global YAML configuration
	// file inside the user's home directory.
	GlobalConfigurationName = ".foldersync.yml"

	// DatabaseDirectoryName names a databases subdirectory of the state
	// directory. Nothing in this module writes there: in-sync databases are
	// stored in each side's base directory.
	DatabaseDirectoryName = "databases"

	// LockDirectoryName names a locks subdirectory of the state directory.
	// Nothing in this module writes there: lock files are created in the
	// locked directories themselves.
	LockDirectoryName = "locks"
)

// HomeDirectory is the cached path to the current user's home directory.
var HomeDirectory string

// FolderSyncDataDirectoryPath is the path to the foldersync state directory.
// It can be overridden in init functions or entry points, but this should be
// done before any calls to StateDirectory.
var FolderSyncDataDirectoryPath string

func init() {
	h, err := os.UserHomeDir()
	if err != nil {
		panic(errors.Wrap(err, "unable to query user's home directory"))
	} else if h == "" {
		panic(errors.New("home directory path empty"))
	}
	HomeDirectory = h
	FolderSyncDataDirectoryPath = filepath.Join(HomeDirectory, FolderSyncDataDirectoryName)
}

// StateDirectory computes (and optionally creates) a subdirectory inside the
// foldersync state directory, hiding the state directory itself in the
// process.
func StateDirectory(create bool, pathComponents ...string) (string, error) {
	result := filepath.Join(FolderSyncDataDirectoryPath, filepath.Join(pathComponents...))

	if create {
		if err := os.MkdirAll(result, 0700); err != nil {
			return "", errors.Wrap(err, "unable to create subpath")
		} else if err := MarkHidden(FolderSyncDataDirectoryPath); err != nil {
			return "", errors.Wrap(err, "unable to hide state directory")
		}
	}

	return result, nil
}
