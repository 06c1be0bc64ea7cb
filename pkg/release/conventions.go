package release

import (
	"fmt"
	"strings"

	"github.com/releasecheck/pkg/version"
)

const DefaultReleaseBranchSuffix = "-release"

// Conventions captures the project's naming rules for tags and branches.
type Conventions struct {
	// Channel is appended to tags as "-{channel}". Empty means no suffix.
	Channel             string
	ReleaseBranchSuffix string
	// GuessBase enables FallbackBase when no base ref is supplied.
	GuessBase bool
}

func DefaultConventions(channel string) Conventions {
	return Conventions{
		Channel:             channel,
		ReleaseBranchSuffix: DefaultReleaseBranchSuffix,
		GuessBase:           true,
	}
}

func (c Conventions) suffix() string {
	if c.Channel == "" {
		return ""
	}
	return "-" + c.Channel
}

// Tag is the release tag for v, e.g. "v1.2.4-relchan".
func (c Conventions) Tag(v version.Version) string {
	return v.String() + c.suffix()
}

// ReleaseBranch is the branch a release of v is prepared on, e.g.
// "v1.2.4-relchan-release".
func (c Conventions) ReleaseBranch(v version.Version) string {
	return c.Tag(v) + c.ReleaseBranchSuffix
}

// FallbackBase guesses the next pre-release line relative to v:
// "v{major}.{minor+1}.x-{channel}". It encodes one project's branching
// convention and is not derivable from repository data.
func (c Conventions) FallbackBase(v version.Version) string {
	return fmt.Sprintf("v%d.%d.x", v.Major, v.Minor+1) + c.suffix()
}

// ResolveBase returns the supplied base, the fallback when guessing is on, or
// "" when the cherry-pick comparison has nothing to compare against.
func (c Conventions) ResolveBase(v version.Version, supplied string) (base string, wasSupplied bool) {
	if supplied = strings.TrimSpace(supplied); supplied != "" {
		return supplied, true
	}
	if c.GuessBase {
		return c.FallbackBase(v), false
	}
	return "", false
}

// MatchesChannel reports whether tag belongs to this release channel.
func (c Conventions) MatchesChannel(tag string) bool {
	return strings.HasSuffix(tag, c.suffix())
}
