package release

import (
	"fmt"
	"strings"

	"github.com/releasecheck/pkg/vcs"
	"github.com/releasecheck/pkg/version"
)

// EvaluationContext is everything one evaluation cycle reads. It is built
// fresh per cycle and never mutated afterwards.
type EvaluationContext struct {
	Owner        string
	Repo         string
	RepoURL      string
	Releases     []vcs.ReleaseRecord
	Conventions  Conventions
	ManifestPath string
	Target       version.Version
	BaseRef      string
}

func (ec EvaluationContext) repoURL() string {
	if ec.RepoURL != "" {
		return strings.TrimSuffix(ec.RepoURL, "/")
	}
	return fmt.Sprintf("https://github.com/%s/%s", ec.Owner, ec.Repo)
}

func (ec EvaluationContext) branchURL(branch string) string {
	return ec.repoURL() + "/tree/" + branch
}

func (ec EvaluationContext) releaseURL(tag string) string {
	return ec.repoURL() + "/releases/tag/" + tag
}

func (ec EvaluationContext) blobURL(ref, path string) string {
	return ec.repoURL() + "/blob/" + ref + "/" + strings.TrimPrefix(path, "/")
}

// Plan is the network-independent part of an evaluation: names derived
// from the target version and the current snapshot.
type Plan struct {
	Target        version.Version `json:"target"`
	TargetTag     string          `json:"target_tag"`
	ReleaseBranch string          `json:"release_branch"`
	BaseBranch    string          `json:"base_branch,omitempty"`
	BaseSupplied  bool            `json:"base_supplied"`
	LatestRelease string          `json:"latest_release,omitempty"`
	// Bump classifies Target against the latest release.
	Bump version.Bump `json:"bump"`
	// AheadOfLatest is false when Target does not sort after the latest
	// release, which usually means a typo.
	AheadOfLatest bool `json:"ahead_of_latest"`
}

func NewPlan(ec EvaluationContext) Plan {
	conv := ec.Conventions
	base, supplied := conv.ResolveBase(ec.Target, ec.BaseRef)

	p := Plan{
		Target:        ec.Target,
		TargetTag:     conv.Tag(ec.Target),
		ReleaseBranch: conv.ReleaseBranch(ec.Target),
		BaseBranch:    base,
		BaseSupplied:  supplied,
		Bump:          version.BumpNone,
		AheadOfLatest: true,
	}

	snap := NewSnapshot(ec.Releases, conv)
	if latest, ok := snap.LatestVersion(); ok {
		p.LatestRelease = snap.LatestRelease.Tag
		p.Bump = version.ClassifyBump(latest, ec.Target)
		p.AheadOfLatest = version.Compare(ec.Target, latest) > 0
	}
	return p
}
