package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/releasecheck/pkg/config"
	"github.com/releasecheck/pkg/vcs"
)

type stubGateway struct {
	releases  []vcs.ReleaseRecord
	branches  map[string]bool
	manifests map[string]string
}

func (s *stubGateway) GetRepository(_ context.Context, owner, repo string) (vcs.RepoInfo, error) {
	return vcs.RepoInfo{Owner: owner, Name: repo, FullName: owner + "/" + repo, HTMLURL: "https://github.com/" + owner + "/" + repo}, nil
}

func (s *stubGateway) ListReleases(context.Context, string, string) ([]vcs.ReleaseRecord, error) {
	return s.releases, nil
}

func (s *stubGateway) BranchExists(_ context.Context, _, _, branch string) (bool, error) {
	return s.branches[branch], nil
}

func (s *stubGateway) TagExists(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func (s *stubGateway) CompareRefs(context.Context, string, string, string, string) (*vcs.Comparison, error) {
	return nil, nil
}

func (s *stubGateway) GetManifestVersion(_ context.Context, _, _, path, ref string) (vcs.ManifestVersion, error) {
	v, ok := s.manifests[ref]
	if !ok {
		return vcs.ManifestVersion{}, vcs.ErrNotFound
	}
	return vcs.ManifestVersion{Version: v, Path: path, Ref: ref, SourceLineNumber: 3}, nil
}

func runCLI(t *testing.T, gw vcs.FactsGateway, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("GITHUB_REPOSITORY", "")
	t.Setenv("GITHUB_TOKEN", "")

	orig := newGateway
	newGateway = func(*config.Config) (vcs.FactsGateway, error) { return gw, nil }
	t.Cleanup(func() { newGateway = orig })

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	code := execute(context.Background(), cmd)
	return code, stdout.String(), stderr.String()
}

func channelReleases() []vcs.ReleaseRecord {
	return []vcs.ReleaseRecord{
		{Tag: "v1.3.0-relchan", IsPrerelease: true},
		{Tag: "v1.2.3-relchan"},
	}
}

func TestNext(t *testing.T) {
	code, out, _ := runCLI(t, nil, "", "next", "v1.2.3-rc.1", "--bump", "minor")
	assert.Equal(t, 0, code)
	assert.Equal(t, "v1.3.0\n", out)

	code, out, _ = runCLI(t, nil, "", "next", "1.2.3")
	assert.Equal(t, 0, code)
	assert.Equal(t, "v1.2.4\n", out)

	code, _, errOut := runCLI(t, nil, "", "next", "1.2")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid version format")

	code, _, errOut = runCLI(t, nil, "", "next", "1.2.3", "--bump", "huge")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown bump kind")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		current, candidate, want string
	}{
		{"1.2.3", "1.2.4", "patch"},
		{"v1.2.3", "v1.3.0", "minor"},
		{"1.2.3-beta", "2.0.0", "major"},
		{"1.2.3", "1.4.0", "none"},
	}
	for _, tt := range tests {
		code, out, _ := runCLI(t, nil, "", "classify", tt.current, tt.candidate)
		assert.Equal(t, 0, code)
		assert.Equal(t, tt.want+"\n", out, tt.current+" -> "+tt.candidate)
	}
}

func TestStatus(t *testing.T) {
	gw := &stubGateway{releases: channelReleases()}
	code, out, _ := runCLI(t, gw, "", "status", "--repo", "acme/widget", "--channel", "relchan", "--output", "markdown")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "## Release status: acme/widget")
	assert.Contains(t, out, "| Suggested target | `v1.2.4` |")
}

func TestStatus_NoRepo(t *testing.T) {
	code, _, errOut := runCLI(t, &stubGateway{}, "", "status")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "no repository")
}

func TestStatus_BadOutput(t *testing.T) {
	code, _, errOut := runCLI(t, &stubGateway{}, "", "status", "--repo", "acme/widget", "--output", "xml")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown output format")
}

func TestCheck_Failures(t *testing.T) {
	gw := &stubGateway{releases: channelReleases()}
	code, out, _ := runCLI(t, gw, "", "check", "--repo", "acme/widget", "--channel", "relchan", "--output", "json")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, `"release_branch": "v1.2.4-relchan-release"`)
	assert.Contains(t, out, `"failed": true`)
}

func TestCheck_AllPass(t *testing.T) {
	releases := append([]vcs.ReleaseRecord{{Tag: "v1.2.4-relchan"}}, channelReleases()...)
	gw := &stubGateway{
		releases:  releases,
		branches:  map[string]bool{"v1.2.4-relchan-release": true},
		manifests: map[string]string{"v1.2.4-relchan-release": "1.2.4"},
	}
	code, out, _ := runCLI(t, gw, "", "check", "--repo", "acme/widget", "--channel", "relchan",
		"--target", "v1.2.4", "--output", "json")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"failed": false`)
}

func TestCheck_InvalidTarget(t *testing.T) {
	code, _, errOut := runCLI(t, &stubGateway{}, "", "check", "--repo", "acme/widget", "--target", "next")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid --target")
}

func TestCheck_Interactive(t *testing.T) {
	gw := &stubGateway{releases: channelReleases()}
	code, out, errOut := runCLI(t, gw, "bogus\n\nv1.2.4\n",
		"check", "--repo", "acme/widget", "--channel", "relchan", "--output", "markdown", "--interactive")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `invalid version "bogus"`)
	assert.Contains(t, out, "### Checklist for `v1.2.4`")
	assert.Contains(t, out, "- [ ] **Release branch exists**")
}

func TestConfigFileWarning(t *testing.T) {
	gw := &stubGateway{releases: channelReleases()}

	code, _, errOut := runCLI(t, gw, "", "status", "--repo", "acme/widget")
	assert.Equal(t, 0, code)
	assert.NotContains(t, errOut, "config file not found")

	code, _, errOut = runCLI(t, gw, "", "status", "--repo", "acme/widget", "--config", "custom.yml")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "config file not found")
}
