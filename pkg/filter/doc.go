// Package filter provides the two filter kinds the comparison engine
// composes: HardFilter, a traversal-time scope filter applied identically to
// both sides, and SoftFilter, a post-pairing activation toggle that may
// legitimately differ in effect between the two sides of a pair.
package filter
