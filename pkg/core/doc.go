// Package core implements the comparison engine, synchronization-direction
// resolver, paired tree data model, and operation stream at the heart of
// the synchronizer: everything between "two directory trees on disk" and
// "a list of per-item operations ready for an executor". The package does
// not read or write file content, perform I/O, or execute any operation
// itself — those are the responsibility of collaborators in pkg/scan,
// pkg/database, and the command built on top of this one.
package core
