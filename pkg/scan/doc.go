// Package scan drives the abstract filesystem traversal of both sides of
// a base-pair, applies the hard filter during that traversal, merges the
// two resulting raw containers into a paired tree, and annotates every
// pair with a category — the work spec components B ("traversal layer"),
// part of C ("paired tree model"), and D ("categorizer") describe as
// feeding one another. It is the first collaborator in pkg/core's data
// flow allowed to touch file content, via CompareFileContent, because it
// sits above the core rather than inside it.
package scan
