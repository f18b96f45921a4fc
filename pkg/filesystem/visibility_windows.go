package filesystem

import (
	"fmt"
	"syscall"
)

// MarkHidden ensures that a path is hidden.
func MarkHidden(path string) error {
	path16, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("unable to convert path encoding: %w", err)
	}

	attributes, err := syscall.GetFileAttributes(path16)
	if err != nil {
		return fmt.Errorf("unable to get file attributes: %w", err)
	}

	attributes |= syscall.FILE_ATTRIBUTE_HIDDEN

	if err := syscall.SetFileAttributes(path16, attributes); err != nil {
		return fmt.Errorf("unable to set file attributes: %w", err)
	}

	return nil
}
