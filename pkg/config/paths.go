package config

import (
	"path/filepath"

	"github.com/dothezz/foldersync/pkg/filesystem"
)

// GlobalConfigurationPath returns the path of the global configuration file
// (spec §6 places config-file I/O outside the core's scope, but a driver
// still needs a conventional default location to look for one). It does not
// verify that the file exists.
func GlobalConfigurationPath() (string, error) {
	return filepath.Join(filesystem.HomeDirectory, filesystem.GlobalConfigurationName), nil
}
