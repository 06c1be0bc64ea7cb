package version

import (
	"fmt"
	"strings"
)

type Bump string

const (
	BumpNone  Bump = "none"
	BumpPatch Bump = "patch"
	BumpMinor Bump = "minor"
	BumpMajor Bump = "major"
)

func (b Bump) String() string {
	return string(b)
}

// ParseBump accepts "patch", "minor" or "major" in any case.
func ParseBump(s string) (Bump, error) {
	switch Bump(strings.ToLower(strings.TrimSpace(s))) {
	case BumpPatch:
		return BumpPatch, nil
	case BumpMinor:
		return BumpMinor, nil
	case BumpMajor:
		return BumpMajor, nil
	default:
		return BumpNone, fmt.Errorf("unknown bump kind %q: want patch | minor | major", s)
	}
}
