// Package version compares agent profile versions using semantic
// versioning. Profiles only require the loose three-component form, so
// comparisons are advisory: callers fall back to string handling when a
// version does not parse.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare compares two version strings using semver.
// Returns -1 if current < next, 0 if equal, 1 if current > next.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func Compare(current, next string) (int, error) {
	cv, err := parse(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	nv, err := parse(next)
	if err != nil {
		return 0, fmt.Errorf("parsing next version %q: %w", next, err)
	}
	return cv.Compare(nv), nil
}

// IsDowngrade returns true if next is older than current. Versions that
// do not parse as semver report an error; the caller decides whether to
// proceed.
func IsDowngrade(current, next string) (bool, error) {
	cmp, err := Compare(current, next)
	if err != nil {
		return false, err
	}
	return cmp == 1, nil
}

// IsCanonical reports whether v parses as strict semver.
func IsCanonical(v string) bool {
	_, err := parse(v)
	return err == nil
}

// parse strips a leading "v" and parses the version string. Strict
// parsing keeps two-component versions like "1.0" out; the coercive
// constructor would silently read them as "1.0.0".
func parse(v string) (*semver.Version, error) {
	v = strings.TrimPrefix(v, "v")
	return semver.StrictNewVersion(v)
}
