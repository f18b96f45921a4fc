//go:build !windows

package lock

import (
	"golang.org/x/sys/unix"
)

// processAlive reports whether pid identifies a currently-running process,
// using the "kill -0" probe: sending signal 0 performs all of the usual
// permission and existence checks without actually delivering a signal
// (spec §4.7 "the session id is present in the OS's live session set").
func processAlive(pid uint64) bool {
	if pid == 0 || pid > 1<<31 {
		return false
	}
	err := unix.Kill(int(pid), 0)
	if err == nil {
		return true
	}
	// EPERM means the process exists but we can't signal it — still alive.
	return err == unix.EPERM
}
