// Package filesystem provides the abstract filesystem view that the core
// comparison and synchronization engine operates against. Everything above
// this package deals only in descriptors and identities; nothing above this
// package opens a file for reading or writing its content.
package filesystem
