package database

import (
	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/filter"
)

// BuildUpdatedTree computes the new in-sync database contents from a
// base-pair's post-sync state, following spec §4.6's update policy: items
// that ended up equal are recorded fresh; items that did not are left as
// whatever the previous database said about them; items that vanished from
// the current tree are dropped only if the current filter would still
// include them (otherwise they were merely filter-hidden, not deleted); and
// a different_metadata folder with no prior record gets a straw_man entry.
func BuildUpdatedTree(base *core.BasePair, previous Tree) Tree {
	return Tree{Root: buildDirectory("", base.Files, base.Symlinks, base.Folders, previous.Root, base.Filter)}
}

func buildDirectory(relPath string, files []*core.FilePair, symlinks []*core.SymlinkPair, folders []*core.FolderPair, previous Directory, hardFilter filter.HardFilter) Directory {
	var result Directory

	previousFiles := indexFiles(previous.Files)
	previousSymlinks := indexSymlinks(previous.Symlinks)
	previousFolders := indexFolders(previous.Folders)

	visitedFiles := make(map[string]bool, len(files))
	for _, pair := range files {
		name := canonicalName(pair.PairState)
		if name == "" {
			continue
		}
		visitedFiles[name] = true
		if pair.Category == core.CategoryEqual {
			result.Files = append(result.Files, FileEntry{Name: name, Left: pair.Left, Right: pair.Right})
			continue
		}
		if prev, ok := previousFiles[name]; ok {
			result.Files = append(result.Files, prev)
		}
	}
	for name, prev := range previousFiles {
		if visitedFiles[name] {
			continue
		}
		path := childPath(relPath, name)
		if hardFilter.Matches(path, false) {
			continue // genuinely deleted
		}
		result.Files = append(result.Files, prev)
	}

	visitedSymlinks := make(map[string]bool, len(symlinks))
	for _, pair := range symlinks {
		name := canonicalName(pair.PairState)
		if name == "" {
			continue
		}
		visitedSymlinks[name] = true
		if pair.Category == core.CategoryEqual {
			result.Symlinks = append(result.Symlinks, SymlinkEntry{Name: name, Left: pair.Left, Right: pair.Right})
			continue
		}
		if prev, ok := previousSymlinks[name]; ok {
			result.Symlinks = append(result.Symlinks, prev)
		}
	}
	for name, prev := range previousSymlinks {
		if visitedSymlinks[name] {
			continue
		}
		path := childPath(relPath, name)
		if hardFilter.Matches(path, false) {
			continue
		}
		result.Symlinks = append(result.Symlinks, prev)
	}

	visitedFolders := make(map[string]bool, len(folders))
	for _, pair := range folders {
		name := canonicalName(pair.PairState)
		if name == "" {
			continue
		}
		visitedFolders[name] = true
		path := childPath(relPath, name)

		prevEntry, hadPrevious := previousFolders[name]
		var previousChildren Directory
		if hadPrevious {
			previousChildren = prevEntry.Children
		}
		children := buildDirectory(path, pair.Files, pair.Symlinks, pair.Folders, previousChildren, hardFilter)

		switch {
		case pair.Category == core.CategoryEqual:
			result.Folders = append(result.Folders, FolderEntry{
				Name: name, Left: pair.Left, Right: pair.Right, Status: StatusInSync, Children: children,
			})
		case pair.Category == core.CategoryDifferentMetadata && !hadPrevious:
			result.Folders = append(result.Folders, FolderEntry{
				Name: name, Left: pair.Left, Right: pair.Right, Status: StatusStrawMan, Children: children,
			})
		case hadPrevious:
			prevEntry.Children = children
			result.Folders = append(result.Folders, prevEntry)
		default:
			// No previous record and nothing to anchor; only keep this
			// node if synced descendants survived underneath it.
			if !directoryEmpty(children) {
				result.Folders = append(result.Folders, FolderEntry{
					Name: name, Left: pair.Left, Right: pair.Right, Status: StatusStrawMan, Children: children,
				})
			}
		}
	}
	for name, prev := range previousFolders {
		if visitedFolders[name] {
			continue
		}
		path := childPath(relPath, name)
		if !hardFilter.DirectoryMightContainMatch(path) || !hardFilter.Matches(path, true) {
			result.Folders = append(result.Folders, prev)
		}
		// Otherwise the filter would have included this folder and it
		// wasn't found: it was genuinely deleted, descendants included.
	}

	return result
}

func directoryEmpty(d Directory) bool {
	return len(d.Files) == 0 && len(d.Symlinks) == 0 && len(d.Folders) == 0
}

// canonicalName returns the pair's name: the left name if it exists there,
// otherwise the right name. When both exist the two names can differ in
// letter case; the left one is used, the same choice pkg/core makes, so the
// database key matches the path core resolves for the pair.
func canonicalName(state core.PairState) string {
	if state.LeftName != "" {
		return state.LeftName
	}
	return state.RightName
}

func indexFiles(entries []FileEntry) map[string]FileEntry {
	index := make(map[string]FileEntry, len(entries))
	for _, e := range entries {
		index[e.Name] = e
	}
	return index
}

func indexSymlinks(entries []SymlinkEntry) map[string]SymlinkEntry {
	index := make(map[string]SymlinkEntry, len(entries))
	for _, e := range entries {
		index[e.Name] = e
	}
	return index
}

func indexFolders(entries []FolderEntry) map[string]FolderEntry {
	index := make(map[string]FolderEntry, len(entries))
	for _, e := range entries {
		index[e.Name] = e
	}
	return index
}
