// Package config is the external-interface layer (spec §6): it describes a
// list of base-pair configurations and a synchronization variant in formats
// a user can write by hand, and builds the already-parsed Go structs
// (pkg/core.BasePair, pkg/filter.HardFilter/SoftFilter) that the core
// consumes. The core package itself never imports this package or any
// encoding format.
package config
