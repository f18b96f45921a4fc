// Package database implements the in-sync database (spec §4.6): a per
// base-pair record of the last synchronous state, stored as a pair of files
// (one per side) so that loading can confirm both sides still agree on which
// session produced the recorded state.
package database
