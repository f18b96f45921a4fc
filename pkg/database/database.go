package database

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Load reads the in-sync database for a base-pair from its two files. found
// is false, with a nil error, when either file is absent, unreadable as this
// format, or the two files' sessions do not match — spec §4.6 treats all of
// these as "not yet existing" (first-time sync). A file whose format version
// differs from FormatVersion is the exception: Load returns
// ErrDatabaseVersionUnsupported for it.
func Load(leftPath, rightPath string) (tree Tree, found bool, err error) {
	leftData, leftErr := os.ReadFile(leftPath)
	rightData, rightErr := os.ReadFile(rightPath)
	if leftErr != nil || rightErr != nil {
		return Tree{}, false, nil
	}

	left, err := decodeSideFile(leftData)
	if err != nil {
		if err == ErrDatabaseVersionUnsupported {
			return Tree{}, false, err
		}
		return Tree{}, false, nil
	}
	right, err := decodeSideFile(rightData)
	if err != nil {
		if err == ErrDatabaseVersionUnsupported {
			return Tree{}, false, err
		}
		return Tree{}, false, nil
	}

	if left.Session != right.Session {
		// Spec §4.6: "search for any session id present in both; take the
		// first match" — with one session recorded per file, a mismatch
		// means no common session exists.
		return Tree{}, false, nil
	}

	sharedCompressed := append(append([]byte(nil), left.SharedHalf...), right.SharedHalf...)
	var shared sharedShape
	if err := decompressJSON(sharedCompressed, &shared); err != nil {
		return Tree{}, false, nil
	}

	return join(shared, left.OwnStream, right.OwnStream), true, nil
}

// Save writes the in-sync database for a base-pair, transactionally (spec
// §4.6 "Transactional write"). If tree is unchanged from what is currently
// recorded, neither file is touched, so that an external process watching
// file modification times sees no spurious update.
func Save(leftPath, rightPath string, tree Tree) error {
	if previous, found, err := Load(leftPath, rightPath); err == nil && found && treeEqual(previous, tree) {
		return nil
	}

	shared, leftStream, rightStream := split(tree)

	sharedCompressed, err := compressJSON(shared)
	if err != nil {
		return err
	}
	leftCompressed, err := compressJSON(leftStream)
	if err != nil {
		return err
	}
	rightCompressed, err := compressJSON(rightStream)
	if err != nil {
		return err
	}

	sharedHalfLeft, sharedHalfRight := splitInHalf(sharedCompressed)
	session := uuid.New()

	leftBytes := encodeSideFile(session, leftCompressed, sharedHalfLeft)
	rightBytes := encodeSideFile(session, rightCompressed, sharedHalfRight)

	if err := writeTransactional(leftPath, rightPath, leftBytes, rightBytes); err != nil {
		return err
	}
	return nil
}

// writeTransactional serializes both files to *.tmp siblings, and only
// renames both into place once both temporary writes succeed. If a
// temporary write or the left rename fails, both temporary files are removed
// and neither destination file is touched. If the right rename fails after
// the left one succeeded, the left file is not restored: it already holds
// the new session while the right file keeps the old one, so a later Load
// reports no database. The right temporary file is removed and the error is
// returned.
func writeTransactional(leftPath, rightPath string, leftBytes, rightBytes []byte) error {
	leftTmp := leftPath + ".tmp"
	rightTmp := rightPath + ".tmp"

	cleanup := func() {
		os.Remove(leftTmp)
		os.Remove(rightTmp)
	}

	if err := os.WriteFile(leftTmp, leftBytes, 0o644); err != nil {
		cleanup()
		return errors.Wrap(err, "unable to write left database temporary file")
	}
	if err := os.WriteFile(rightTmp, rightBytes, 0o644); err != nil {
		cleanup()
		return errors.Wrap(err, "unable to write right database temporary file")
	}

	if err := os.Rename(leftTmp, leftPath); err != nil {
		cleanup()
		return errors.Wrap(err, "unable to install left database file")
	}
	if err := os.Rename(rightTmp, rightPath); err != nil {
		// The left rename already succeeded and is not undone; report the
		// error and clean up the right temp file.
		os.Remove(rightTmp)
		return errors.Wrap(err, "unable to install right database file")
	}
	return nil
}

// PathsForBase returns the conventional database file paths for a base-pair
// rooted at leftRoot/rightRoot.
func PathsForBase(leftRoot, rightRoot, baseName string) (leftPath, rightPath string) {
	return filepath.Join(leftRoot, "."+baseName+".ffs_db"), filepath.Join(rightRoot, "."+baseName+".ffs_db")
}

func treeEqual(a, b Tree) bool {
	return reflect.DeepEqual(a, b)
}
