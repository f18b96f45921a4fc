package config

import (
	"strings"

	"github.com/dothezz/foldersync/pkg/encoding"
)

// LoadTOML loads a config.File from a TOML document (spec §6's primary
// config format), following the teacher's pkg/encoding/toml.go pattern.
func LoadTOML(path string) (*File, error) {
	file := &File{}
	if err := encoding.LoadAndUnmarshalTOML(path, file); err != nil {
		return nil, err
	}
	return file, nil
}

// LoadYAML loads a config.File from a YAML document, the alternate format
// the teacher's pkg/encoding/yaml.go already supports.
func LoadYAML(path string) (*File, error) {
	file := &File{}
	if err := encoding.LoadAndUnmarshalYAML(path, file); err != nil {
		return nil, err
	}
	return file, nil
}

// Load dispatches to LoadTOML or LoadYAML based on path's extension,
// defaulting to TOML when the extension is unrecognized.
func Load(path string) (*File, error) {
	switch {
	case strings.HasSuffix(path, ".yml"), strings.HasSuffix(path, ".yaml"):
		return LoadYAML(path)
	default:
		return LoadTOML(path)
	}
}
