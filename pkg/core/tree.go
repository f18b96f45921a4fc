package core

import (
	"fmt"

	"github.com/dothezz/foldersync/pkg/filesystem"
	"github.com/dothezz/foldersync/pkg/filter"
)

// PairState is the state common to every paired item (spec §3): a short
// name per side (an empty name is the canonical "does not exist on this
// side" indicator, I1), a category, an active flag, and the direction and
// operation the resolver fills in once it has run.
type PairState struct {
	ID        PairID
	LeftName  string
	RightName string

	Category Category
	Active   bool

	Direction         Direction
	DirectionConflict string
	Operation         Operation

	// MovePartner is the identity of the paired item this one was matched
	// with by move detection, valid only when Operation is one of the
	// move_* values (spec §4.5 "move detection").
	MovePartner PairID
}

// ExistsOn reports whether the pair has a representation on side (I1).
func (p *PairState) ExistsOn(side Side) bool {
	return p.NameOn(side) != ""
}

// NameOn returns the short name the pair carries on side, or "" if the
// pair does not exist there.
func (p *PairState) NameOn(side Side) string {
	if side == Left {
		return p.LeftName
	}
	return p.RightName
}

// Empty reports whether the pair exists on neither side, the condition
// empty-subtree elision removes (spec I3).
func (p *PairState) Empty() bool {
	return p.LeftName == "" && p.RightName == ""
}

// SetDirection records a resolved direction, enforcing I2: a non-empty
// conflict description forces direction to none.
func (p *PairState) SetDirection(direction Direction, conflict string) {
	if conflict != "" {
		direction = DirectionNone
	}
	p.Direction = direction
	p.DirectionConflict = conflict
}

// FilePair is a paired item representing a regular file on one or both
// sides (spec §3, §4.4).
type FilePair struct {
	PairState
	Left  filesystem.FileDescriptor
	Right filesystem.FileDescriptor
}

// EnsureValid checks I1: a side with an empty name must carry a
// default-constructed descriptor.
func (f *FilePair) EnsureValid() error {
	if f.LeftName == "" && f.Left != (filesystem.FileDescriptor{}) {
		return fmt.Errorf("file pair: empty left name but non-empty left descriptor")
	}
	if f.RightName == "" && f.Right != (filesystem.FileDescriptor{}) {
		return fmt.Errorf("file pair: empty right name but non-empty right descriptor")
	}
	return nil
}

// Equal compares the structural content of two file pairs (names and
// descriptors), ignoring transient resolver state such as Direction,
// Operation, and ID.
func (f *FilePair) Equal(other *FilePair) bool {
	if other == nil {
		return false
	}
	return f.LeftName == other.LeftName &&
		f.RightName == other.RightName &&
		f.Left.Equal(other.Left) &&
		f.Right.Equal(other.Right)
}

// Copy returns a shallow copy of f; FilePair has no reference fields that
// require a deep copy.
func (f *FilePair) Copy() *FilePair {
	clone := *f
	return &clone
}

// SymlinkPair is a paired item representing a symlink on one or both sides
// under the "direct" symlink policy (spec §4.4).
type SymlinkPair struct {
	PairState
	Left  filesystem.SymlinkDescriptor
	Right filesystem.SymlinkDescriptor
}

// EnsureValid checks I1 for symlink pairs.
func (s *SymlinkPair) EnsureValid() error {
	if s.LeftName == "" && s.Left != (filesystem.SymlinkDescriptor{}) {
		return fmt.Errorf("symlink pair: empty left name but non-empty left descriptor")
	}
	if s.RightName == "" && s.Right != (filesystem.SymlinkDescriptor{}) {
		return fmt.Errorf("symlink pair: empty right name but non-empty right descriptor")
	}
	return nil
}

// Equal compares the structural content of two symlink pairs.
func (s *SymlinkPair) Equal(other *SymlinkPair) bool {
	if other == nil {
		return false
	}
	return s.LeftName == other.LeftName &&
		s.RightName == other.RightName &&
		s.Left == other.Left &&
		s.Right == other.Right
}

// Copy returns a shallow copy of s.
func (s *SymlinkPair) Copy() *SymlinkPair {
	clone := *s
	return &clone
}

// FolderPair is a paired item representing a directory on one or both
// sides; it additionally owns ordered collections of its children (spec
// §3). Parent is a plain Go pointer rather than an arena index: Go's
// garbage collector already gives back-references the safety the source's
// arena design bought by hand, so there is no "weak back-reference"
// problem to re-solve (spec §9).
type FolderPair struct {
	PairState
	Left  filesystem.FolderDescriptor
	Right filesystem.FolderDescriptor

	Parent *FolderPair

	Files    []*FilePair
	Symlinks []*SymlinkPair
	Folders  []*FolderPair
}

// EnsureValid checks I1 for folder pairs.
func (d *FolderPair) EnsureValid() error {
	if d.LeftName == "" && d.Left != (filesystem.FolderDescriptor{}) {
		return fmt.Errorf("folder pair: empty left name but non-empty left descriptor")
	}
	if d.RightName == "" && d.Right != (filesystem.FolderDescriptor{}) {
		return fmt.Errorf("folder pair: empty right name but non-empty right descriptor")
	}
	return nil
}

// Equal compares the structural content of two folder pairs, recursively.
func (d *FolderPair) Equal(other *FolderPair) bool {
	if other == nil {
		return false
	}
	if d.LeftName != other.LeftName || d.RightName != other.RightName {
		return false
	}
	if d.Left != other.Left || d.Right != other.Right {
		return false
	}
	if len(d.Files) != len(other.Files) || len(d.Symlinks) != len(other.Symlinks) || len(d.Folders) != len(other.Folders) {
		return false
	}
	for i, file := range d.Files {
		if !file.Equal(other.Files[i]) {
			return false
		}
	}
	for i, symlink := range d.Symlinks {
		if !symlink.Equal(other.Symlinks[i]) {
			return false
		}
	}
	for i, folder := range d.Folders {
		if !folder.Equal(other.Folders[i]) {
			return false
		}
	}
	return true
}

// PruneEmpty recursively removes children that exist on neither side
// (spec I3), deregistering their identity from table. It is idempotent
// (P4): a second call after a first is a no-op.
func (d *FolderPair) PruneEmpty(table *Table[any]) {
	for _, child := range d.Folders {
		child.PruneEmpty(table)
	}

	d.Folders = pruneSlice(d.Folders, table)
	d.Files = pruneSlice(d.Files, table)
	d.Symlinks = pruneSlice(d.Symlinks, table)
}

type emptyChecker interface {
	isEmpty() bool
	identity() PairID
}

func (f *FilePair) isEmpty() bool    { return f.PairState.Empty() }
func (f *FilePair) identity() PairID { return f.ID }

func (s *SymlinkPair) isEmpty() bool    { return s.PairState.Empty() }
func (s *SymlinkPair) identity() PairID { return s.ID }

func (d *FolderPair) isEmpty() bool    { return d.PairState.Empty() && len(d.Files) == 0 && len(d.Symlinks) == 0 && len(d.Folders) == 0 }
func (d *FolderPair) identity() PairID { return d.ID }

func pruneSlice[T emptyChecker](items []T, table *Table[any]) []T {
	kept := items[:0]
	for _, item := range items {
		if item.isEmpty() {
			if table != nil {
				table.Deregister(item.identity())
			}
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// BasePair is the root of one paired tree, rooted at two absolute paths
// (spec §3). Unlike FolderPair it is not itself a paired item: it has no
// category, direction, or identity of its own.
type BasePair struct {
	LeftPath, RightPath           string
	LeftAvailable, RightAvailable bool

	Filter     filter.HardFilter
	SoftFilter filter.SoftFilter

	CompareBy           CompareBy
	ToleranceSeconds    int64
	IgnoredShiftMinutes []int
	SymlinkPolicy       filesystem.SymlinkPolicy
	Variant             SyncVariant

	Files    []*FilePair
	Symlinks []*SymlinkPair
	Folders  []*FolderPair
}

// PruneEmpty applies empty-subtree elision (spec I3) to the base-pair's
// direct children and, recursively, their subtrees.
func (b *BasePair) PruneEmpty(table *Table[any]) {
	for _, child := range b.Folders {
		child.PruneEmpty(table)
	}
	b.Folders = pruneSlice(b.Folders, table)
	b.Files = pruneSlice(b.Files, table)
	b.Symlinks = pruneSlice(b.Symlinks, table)
}

// Walk visits every folder-pair, file-pair, and symlink-pair in the
// base-pair's tree in depth-first, pre-order, left-before-right-child
// traversal order, matching the construction order documented in spec
// §4.3. visitFolder is called before its children (pre-order) and again is
// not called a second time after (callers needing post-order behavior for
// container propagation do their own recursive pass, as
// PropagateContainers does).
func (b *BasePair) Walk(visitFile func(*FilePair), visitSymlink func(*SymlinkPair), visitFolder func(*FolderPair)) {
	for _, file := range b.Files {
		if visitFile != nil {
			visitFile(file)
		}
	}
	for _, symlink := range b.Symlinks {
		if visitSymlink != nil {
			visitSymlink(symlink)
		}
	}
	for _, folder := range b.Folders {
		walkFolder(folder, visitFile, visitSymlink, visitFolder)
	}
}

func walkFolder(folder *FolderPair, visitFile func(*FilePair), visitSymlink func(*SymlinkPair), visitFolder func(*FolderPair)) {
	if visitFolder != nil {
		visitFolder(folder)
	}
	for _, file := range folder.Files {
		if visitFile != nil {
			visitFile(file)
		}
	}
	for _, symlink := range folder.Symlinks {
		if visitSymlink != nil {
			visitSymlink(symlink)
		}
	}
	for _, child := range folder.Folders {
		walkFolder(child, visitFile, visitSymlink, visitFolder)
	}
}
