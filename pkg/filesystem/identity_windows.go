package filesystem

import (
	"os"
)

// identityFromInfo extracts file identity from os.FileInfo. On Windows the
// file index/volume serial aren't cheaply available through directory
// enumeration (they require opening the file), so identity is left zero.
// Move detection degrades to create+delete on Windows, which is the
// documented behavior (spec §4.5 describes move detection as an
// optimization, not a correctness requirement).
func identityFromInfo(_ os.FileInfo) Identity {
	return Identity{}
}
