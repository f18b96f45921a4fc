//go:build !windows

package filesystem

import (
	"os"
	"syscall"
)

// identityFromInfo extracts file identity from os.FileInfo. On POSIX
// platforms this is the device and inode numbers from the raw stat
// structure.
func identityFromInfo(info os.FileInfo) Identity {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Identity{}
	}
	return Identity{Device: uint64(stat.Dev), File: uint64(stat.Ino)}
}
