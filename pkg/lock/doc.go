// Package lock implements the directory lock protocol that protects a base
// directory against concurrent access by another instance of this software
// (spec §4.7): exclusive lock-file creation, a GUID/host/user/process-id
// payload, heartbeat-by-append while held, and abandoned-lock recovery via a
// secondary "Del." lock guarding the deletion of a stale one.
package lock
