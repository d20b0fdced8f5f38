package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Current is the declared version of the asf-example
// package. This is automatically updated by the stamper.
const Current = "0.1.0-dev1"

// ErrMalformed reports a version string that does not
// match MAJOR.MINOR.PATCH or MAJOR.MINOR.PATCH-devN.
var ErrMalformed = errors.New("malformed version")

// Version is a package version identifier. Dev == 0
// means a released version; Dev >= 1 means development
// snapshot number Dev following the most recent release.
// Negative fields are rejected by Parse, so a Version
// built from stored text is always well formed.
type Version struct {
	Major int
	Minor int
	Patch int
	Dev   int
}

// Zero is the sentinel base used when no version has
// ever been recorded for the package.
var Zero = Version{}

// pattern accepts M.N.P with an optional -devK suffix.
// A dev counter starts at 1, so "dev0" is malformed.
var pattern = regexp.MustCompile(
	`^(\d+)\.(\d+)\.(\d+)(?:-dev([1-9]\d*))?$`,
)

// Parse converts a stored version string into a
// Version. The whole string must match; anything else
// wraps ErrMalformed.
func Parse(s string) (Version, error) {
	const errCtx = "parsing version"

	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf(
			"%s: %q: %w", errCtx, s, ErrMalformed,
		)
	}

	fields := [4]int{}

	for idx, group := range m[1:] {
		if group == "" {
			// Absent dev suffix.
			continue
		}

		val, err := strconv.Atoi(group)
		if err != nil {
			return Version{}, fmt.Errorf(
				"%s: %q: %w", errCtx, s, ErrMalformed,
			)
		}

		fields[idx] = val
	}

	return Version{
		Major: fields[0],
		Minor: fields[1],
		Patch: fields[2],
		Dev:   fields[3],
	}, nil
}

// String renders the version as M.N.P or M.N.P-devK.
func (v Version) String() string {
	if v.Dev == 0 {
		return fmt.Sprintf(
			"%d.%d.%d", v.Major, v.Minor, v.Patch,
		)
	}

	return fmt.Sprintf(
		"%d.%d.%d-dev%d",
		v.Major, v.Minor, v.Patch, v.Dev,
	)
}

// IsDev reports whether the version carries a dev
// suffix, i.e. is an unpublished snapshot.
func (v Version) IsDev() bool {
	return v.Dev > 0
}

// BumpDev advances to the next development snapshot.
// From a released version it opens a new development
// cycle: the minor number increments and the dev
// counter resets to 1. From a development version only
// the dev counter increments.
func (v Version) BumpDev() Version {
	if v.IsDev() {
		v.Dev++

		return v
	}

	v.Minor++
	v.Dev = 1

	return v
}

// BumpRelease publishes the current development cycle
// by removing the dev suffix. Calling it on an already
// released version is a no-op; it never increments the
// minor number.
func (v Version) BumpRelease() Version {
	v.Dev = 0

	return v
}
