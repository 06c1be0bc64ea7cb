// Package version implements the small semantic-version algebra used to plan
// releases: strict parsing, core-only ordering, increments and successor
// classification.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidFormat is returned for strings that are not a numeric triple with
// optional pre-release and build suffixes.
var ErrInvalidFormat = errors.New("invalid version format")

var pattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)

// Version is a parsed version. Prerelease and Metadata are kept for display
// only and never take part in ordering.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Metadata   string
}

// Parse strips one leading "v" and validates the remainder.
func Parse(s string) (Version, error) {
	m := pattern.FindStringSubmatch(strings.TrimPrefix(s, "v"))
	if m == nil {
		return Version{}, goerr.Wrap(ErrInvalidFormat, "parse version", goerr.V("input", s))
	}

	var nums [3]uint64
	for i := range nums {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return Version{}, goerr.Wrap(ErrInvalidFormat, "version component out of range",
				goerr.V("input", s), goerr.V("component", m[i+1]))
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: m[4],
		Metadata:   m[5],
	}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValid reports whether s parses.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders a bare triple with the "v" prefix.
func Format(major, minor, patch uint64) string {
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}

// Core renders the numeric triple without prefix or suffixes.
func (v Version) Core() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// String renders the version with the "v" prefix and any suffixes.
func (v Version) String() string {
	s := "v" + v.Core()
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

// core is the suffix-free projection as a semver value.
func (v Version) core() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, "", "")
}

func fromSemver(sv semver.Version) Version {
	return Version{Major: sv.Major(), Minor: sv.Minor(), Patch: sv.Patch()}
}

// Compare orders a and b by (major, minor, patch) only, so "1.2.3-beta"
// compares equal to "1.2.3".
func Compare(a, b Version) int {
	return a.core().Compare(b.core())
}

// CompareStrings parses both sides before comparing.
func CompareStrings(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return Compare(va, vb), nil
}

// Next increments v according to kind. The result never carries a
// pre-release or metadata suffix. BumpNone returns the core of v.
func Next(v Version, kind Bump) Version {
	c := v.core()
	switch kind {
	case BumpPatch:
		return fromSemver(c.IncPatch())
	case BumpMinor:
		return fromSemver(c.IncMinor())
	case BumpMajor:
		return fromSemver(c.IncMajor())
	default:
		return fromSemver(*c)
	}
}

// ClassifyBump returns the increment that turns current into candidate, or
// BumpNone when candidate is not an exact direct successor.
func ClassifyBump(current, candidate Version) Bump {
	for _, kind := range []Bump{BumpPatch, BumpMinor, BumpMajor} {
		if Compare(Next(current, kind), candidate) == 0 {
			return kind
		}
	}
	return BumpNone
}

// MarshalText renders the version as String does.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
