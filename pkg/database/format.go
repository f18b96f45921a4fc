package database

import "github.com/pkg/errors"

// formatTag identifies the file as belonging to this synchronizer, mirroring
// the lock file's own format tag.
const formatTag = "FreeFileSync"

// FormatVersion is the current on-disk database format version. Load refuses
// any file whose version does not exactly match (spec §9's explicit
// instruction; see the project's design notes for why this is a strict gate
// rather than a migration chain).
const FormatVersion int32 = 1

// ErrDatabaseVersionUnsupported is returned by Load when a file's format
// version does not match FormatVersion.
var ErrDatabaseVersionUnsupported = errors.New("database: unsupported format version")

// ErrDatabaseCorrupt is returned by the side-file decoder when a file's
// contents cannot be parsed as a database of any version. Load does not
// return it: it reports such a file as no database (found false).
var ErrDatabaseCorrupt = errors.New("database: corrupt file")
