// Package gitver reads the package version recorded at
// the HEAD commit, so version bumps can be computed
// against the last committed state instead of the
// working tree.
package gitver
