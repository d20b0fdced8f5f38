// Package gitcli provides a thin wrapper for running
// the git command line with debug tracing. It exists so
// the stamper can read repository state without binding
// to a git library.
package gitcli
