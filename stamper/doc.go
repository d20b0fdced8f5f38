// Package stamper advances the asf-example package
// version. A run validates the package metadata,
// computes the bumped version for the requested mode
// (dev snapshot, release, or explicit), rewrites the
// metadata file and the version source constant, and
// reports the previous and new version.
package stamper
