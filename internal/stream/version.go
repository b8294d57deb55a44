package stream

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Matches the full rendering "<branch>_<name>.<major>.<minor>". The last
// separator may also be an underscore, so path renderings can be combined
// with a branch and stream prefix.
var versionPattern = regexp.MustCompile(`^([a-z0-9]+)_(.+)\.(\d+)[._](\d+)$`)

// Version component to increment.
type Part string

const (
	Major Part = "major"
	Minor Part = "minor"
)

// Controls what happens to the minor component on a major increment.
type IncrementPolicy int

const (

	// Leaves the minor component untouched.
	KeepMinor IncrementPolicy = iota

	// Sets the minor component to zero.
	ResetMinor
)

// Version of a build within a stream. Versions are ordered by (Major, Minor).
type Version struct {
	Major  uint   // Major component.
	Minor  uint   // Minor component.
	Branch Branch // Branch of the stream.
	Name   string // Stream name.
}

// Parses the full rendering of a version.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q", s)
	}

	branch, err := ParseBranch(m[1])
	if err != nil {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q: %v", s, err)
	}

	major, err := strconv.ParseUint(m[3], 10, 0)
	if err != nil {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q: %v", s, err)
	}
	minor, err := strconv.ParseUint(m[4], 10, 0)
	if err != nil {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q: %v", s, err)
	}

	return Version{
		Major:  uint(major),
		Minor:  uint(minor),
		Branch: branch,
		Name:   m[2],
	}, nil
}

// Returns the native rendering, "<major>.<minor>".
func (v Version) String() string {
	return v.Native()
}

// Returns the native rendering, "<major>.<minor>".
func (v Version) Native() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Returns the rendering used as a directory name, "<major>_<minor>".
func (v Version) Path() string {
	return fmt.Sprintf("%d_%d", v.Major, v.Minor)
}

// Returns the full rendering, "<branch>_<name>.<major>.<minor>".
func (v Version) Full() string {
	return fmt.Sprintf("%s_%s.%d.%d", v.Branch, v.Name, v.Major, v.Minor)
}

// Orders versions by (Major, Minor). Returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		if v.Major < other.Major {
			return -1
		}
		return 1
	case v.Minor != other.Minor:
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// Returns the version with one component incremented.
//
// A major increment keeps the minor component unless policy is [ResetMinor].
func (v Version) Next(part Part, policy IncrementPolicy) (Version, error) {
	switch part {
	case Major:
		v.Major++
		if policy == ResetMinor {
			v.Minor = 0
		}
	case Minor:
		v.Minor++
	default:
		return Version{}, errors.Wrapf(ErrUnknownValue, "version part %q", part)
	}
	return v, nil
}
