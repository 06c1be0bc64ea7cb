package release

import (
	"github.com/releasecheck/pkg/vcs"
	"github.com/releasecheck/pkg/version"
)

type Snapshot struct {
	LatestRelease    *vcs.ReleaseRecord `json:"latest_release,omitempty"`
	LatestPrerelease *vcs.ReleaseRecord `json:"latest_prerelease,omitempty"`
}

// NewSnapshot picks the first channel release of each kind. releases must be
// newest first, as the host returns them; no re-sorting happens here.
func NewSnapshot(releases []vcs.ReleaseRecord, conv Conventions) Snapshot {
	var s Snapshot
	for i := range releases {
		r := releases[i]
		if r.IsDraft || !conv.MatchesChannel(r.Tag) {
			continue
		}
		if r.IsPrerelease {
			if s.LatestPrerelease == nil {
				s.LatestPrerelease = &r
			}
		} else if s.LatestRelease == nil {
			s.LatestRelease = &r
		}
		if s.LatestRelease != nil && s.LatestPrerelease != nil {
			break
		}
	}
	return s
}

// LatestVersion parses the latest stable release tag.
func (s Snapshot) LatestVersion() (version.Version, bool) {
	if s.LatestRelease == nil {
		return version.Version{}, false
	}
	v, err := version.Parse(s.LatestRelease.Tag)
	if err != nil {
		return version.Version{}, false
	}
	return v, true
}

// SuggestedTarget is the patch successor of the latest stable release.
func (s Snapshot) SuggestedTarget() (version.Version, bool) {
	v, ok := s.LatestVersion()
	if !ok {
		return version.Version{}, false
	}
	return version.Next(v, version.BumpPatch), true
}
