package config

import (
	"fmt"

	"github.com/dothezz/foldersync/pkg/comparison"
	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filesystem"
	"github.com/dothezz/foldersync/pkg/filter"
)

// CompareVariant names the comparison variant in config files, mirroring
// core.CompareBy but as a string so TOML/YAML sources stay human-writable.
type CompareVariant string

const (
	CompareTimeAndSize CompareVariant = "time-and-size"
	CompareContent     CompareVariant = "content"
)

func (v CompareVariant) toCore() (core.CompareBy, error) {
	switch v {
	case "", CompareTimeAndSize:
		return core.CompareByTimeAndSize, nil
	case CompareContent:
		return core.CompareByContent, nil
	default:
		return 0, fmt.Errorf("unknown comparison variant: %q", v)
	}
}

// SyncVariant names the synchronization variant in config files, mirroring
// core.SyncVariant (spec §6: "mirror | update | two-way | custom").
type SyncVariant string

const (
	SyncMirror SyncVariant = "mirror"
	SyncUpdate SyncVariant = "update"
	SyncTwoWay SyncVariant = "two-way"
	SyncCustom SyncVariant = "custom"
)

func (v SyncVariant) toCore() (core.SyncVariant, error) {
	switch v {
	case "", SyncMirror:
		return core.SyncMirror, nil
	case SyncUpdate:
		return core.SyncUpdate, nil
	case SyncTwoWay:
		return core.SyncTwoWay, nil
	case SyncCustom:
		return core.SyncCustom, nil
	default:
		return 0, fmt.Errorf("unknown synchronization variant: %q", v)
	}
}

// SymlinkPolicy names the symlink traversal policy in config files,
// mirroring filesystem.SymlinkPolicy.
type SymlinkPolicy string

const (
	SymlinkDirect  SymlinkPolicy = "direct"
	SymlinkFollow  SymlinkPolicy = "follow"
	SymlinkExclude SymlinkPolicy = "exclude"
)

func (v SymlinkPolicy) toCore() (filesystem.SymlinkPolicy, error) {
	switch v {
	case "", SymlinkDirect:
		return filesystem.SymlinkPolicyDirect, nil
	case SymlinkFollow:
		return filesystem.SymlinkPolicyFollow, nil
	case SymlinkExclude:
		return filesystem.SymlinkPolicyExclude, nil
	default:
		return 0, fmt.Errorf("unknown symlink policy: %q", v)
	}
}

// SoftFilter is the config-file representation of filter.SoftFilter (spec
// §4.2).
type SoftFilter struct {
	TimeFrom    int64    `toml:"timeFrom" yaml:"timeFrom"`
	MinSize     ByteSize `toml:"minSize" yaml:"minSize"`
	MaxSize     ByteSize `toml:"maxSize" yaml:"maxSize"`
	FolderMatch bool     `toml:"folderMatch" yaml:"folderMatch"`
}

func (s SoftFilter) toCore() filter.SoftFilter {
	return filter.SoftFilter{
		TimeFrom:    s.TimeFrom,
		MinSize:     uint64(s.MinSize),
		MaxSize:     uint64(s.MaxSize),
		FolderMatch: s.FolderMatch,
	}
}

// BasePair is the config-file representation of one base-pair (spec §6:
// "two absolute paths, a hard filter..., a soft filter, a comparison
// variant, a symlink policy, a file-time tolerance..., and a list of
// ignored time-shift offsets").
type BasePair struct {
	LeftPath  string `toml:"left" yaml:"left"`
	RightPath string `toml:"right" yaml:"right"`

	IncludeMasks  []string `toml:"include" yaml:"include"`
	ExcludeMasks  []string `toml:"exclude" yaml:"exclude"`
	CaseSensitive bool     `toml:"caseSensitive" yaml:"caseSensitive"`

	Soft SoftFilter `toml:"softFilter" yaml:"softFilter"`

	CompareBy           CompareVariant `toml:"compareBy" yaml:"compareBy"`
	ToleranceSeconds    int64          `toml:"toleranceSeconds" yaml:"toleranceSeconds"`
	IgnoredShiftMinutes []int          `toml:"ignoredShiftMinutes" yaml:"ignoredShiftMinutes"`
	Symlinks            SymlinkPolicy  `toml:"symlinks" yaml:"symlinks"`
}

// Equal reports whether two base-pair configurations describe the same
// comparison, the way teacher's Configuration.Equal compares a
// synchronization session's settings field by field.
func (b *BasePair) Equal(other *BasePair) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.LeftPath == other.LeftPath &&
		b.RightPath == other.RightPath &&
		comparison.StringSlicesEqual(b.IncludeMasks, other.IncludeMasks) &&
		comparison.StringSlicesEqual(b.ExcludeMasks, other.ExcludeMasks) &&
		b.CaseSensitive == other.CaseSensitive &&
		b.Soft == other.Soft &&
		b.CompareBy == other.CompareBy &&
		b.ToleranceSeconds == other.ToleranceSeconds &&
		intSlicesEqual(b.IgnoredShiftMinutes, other.IgnoredShiftMinutes) &&
		b.Symlinks == other.Symlinks
}

// intSlicesEqual mirrors comparison.StringSlicesEqual for []int, which
// IgnoredShiftMinutes needs and the shared helper doesn't cover.
func intSlicesEqual(first, second []int) bool {
	if len(first) != len(second) {
		return false
	}
	for i, f := range first {
		if second[i] != f {
			return false
		}
	}
	return true
}

// ToCore validates the configuration and builds the core.BasePair input the
// scanner/categorizer/resolver consume. It leaves Files/Symlinks/Folders
// empty; those are populated by a subsequent scan.
func (b *BasePair) ToCore() (*core.BasePair, error) {
	if b.LeftPath == "" || b.RightPath == "" {
		return nil, fmt.Errorf("base-pair requires both left and right paths")
	}
	compareBy, err := b.CompareBy.toCore()
	if err != nil {
		return nil, err
	}
	symlinkPolicy, err := b.Symlinks.toCore()
	if err != nil {
		return nil, err
	}

	var hard filter.HardFilter = filter.NullFilter{}
	if len(b.IncludeMasks) > 0 || len(b.ExcludeMasks) > 0 {
		hard = filter.NewNameFilter(b.IncludeMasks, b.ExcludeMasks, b.CaseSensitive)
	}

	return &core.BasePair{
		LeftPath:            b.LeftPath,
		RightPath:           b.RightPath,
		Filter:              hard,
		SoftFilter:          b.Soft.toCore(),
		CompareBy:           compareBy,
		ToleranceSeconds:    b.ToleranceSeconds,
		IgnoredShiftMinutes: b.IgnoredShiftMinutes,
		SymlinkPolicy:       symlinkPolicy,
	}, nil
}

// File is the top-level config-file document (spec §6): a list of base-pair
// configurations plus the synchronization variant applied to all of them.
type File struct {
	Variant   SyncVariant `toml:"variant" yaml:"variant"`
	BasePairs []BasePair  `toml:"basePair" yaml:"basePairs"`
}

// ResolveVariant resolves the file's synchronization variant.
func (f *File) ResolveVariant() (core.SyncVariant, error) {
	return f.Variant.toCore()
}
