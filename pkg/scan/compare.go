package scan

import (
	"io"
	"os"
)

// compareChunkSize is the read-buffer size used by CompareFileContent. It
// trades memory for fewer syscalls; it is not a configurable knob because
// the comparison's asymptotic cost is dominated by disk I/O either way.
const compareChunkSize = 64 * 1024

// CompareFileContent reports whether the two files have byte-identical
// content, short-circuiting as soon as a difference is found. It is the
// "binary-compare helper" the comparison engine's §4.1 content-comparison
// delegation describes, implementing core.ContentComparator; pkg/core
// itself never opens a file.
func CompareFileContent(leftPath, rightPath string) (bool, error) {
	left, err := os.Open(leftPath)
	if err != nil {
		return false, err
	}
	defer left.Close()

	right, err := os.Open(rightPath)
	if err != nil {
		return false, err
	}
	defer right.Close()

	leftBuf := make([]byte, compareChunkSize)
	rightBuf := make([]byte, compareChunkSize)

	for {
		leftN, leftErr := io.ReadFull(left, leftBuf)
		rightN, rightErr := io.ReadFull(right, rightBuf)

		if leftN != rightN {
			return false, nil
		}
		for i := 0; i < leftN; i++ {
			if leftBuf[i] != rightBuf[i] {
				return false, nil
			}
		}

		leftDone := leftErr == io.EOF || leftErr == io.ErrUnexpectedEOF
		rightDone := rightErr == io.EOF || rightErr == io.ErrUnexpectedEOF

		if leftDone && rightDone {
			return true, nil
		}
		if leftDone != rightDone {
			return false, nil
		}
		if leftErr != nil {
			return false, leftErr
		}
		if rightErr != nil {
			return false, rightErr
		}
	}
}
