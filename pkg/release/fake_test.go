package release

import (
	"context"
	"errors"
	"sync"

	"github.com/releasecheck/pkg/vcs"
)

var errBoom = errors.New("connection reset")

// fakeGateway serves canned facts. Zero-value fields mean "not found".
type fakeGateway struct {
	repo        vcs.RepoInfo
	repoErr     error
	repoErrs    map[string]error
	releases    []vcs.ReleaseRecord
	releasesErr error
	branches    map[string]bool
	branchErr   error
	tags        map[string]bool
	tagErr      error
	comparison  *vcs.Comparison
	manifests   map[string]vcs.ManifestVersion
	manifestErr error

	// hooks run before the corresponding call returns.
	onRepo    func(ctx context.Context, repo string)
	onBranch  func(ctx context.Context, branch string)
	onCompare func()

	mu    sync.Mutex
	calls []string
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeGateway) GetRepository(ctx context.Context, owner, repo string) (vcs.RepoInfo, error) {
	f.record("GetRepository")
	if f.onRepo != nil {
		f.onRepo(ctx, repo)
	}
	if f.repoErr != nil {
		return vcs.RepoInfo{}, f.repoErr
	}
	if err := f.repoErrs[repo]; err != nil {
		return vcs.RepoInfo{}, err
	}
	if f.repo.Name == "" {
		return vcs.RepoInfo{Owner: owner, Name: repo, HTMLURL: "https://github.com/" + owner + "/" + repo}, nil
	}
	return f.repo, nil
}

func (f *fakeGateway) ListReleases(_ context.Context, owner, repo string) ([]vcs.ReleaseRecord, error) {
	f.record("ListReleases")
	if f.releasesErr != nil {
		return nil, f.releasesErr
	}
	return f.releases, nil
}

func (f *fakeGateway) BranchExists(ctx context.Context, owner, repo, branch string) (bool, error) {
	f.record("BranchExists")
	if f.onBranch != nil {
		f.onBranch(ctx, branch)
	}
	if f.branchErr != nil {
		return false, f.branchErr
	}
	return f.branches[branch], nil
}

func (f *fakeGateway) TagExists(_ context.Context, owner, repo, tag string) (bool, error) {
	f.record("TagExists")
	if f.tagErr != nil {
		return false, f.tagErr
	}
	return f.tags[tag], nil
}

func (f *fakeGateway) CompareRefs(_ context.Context, owner, repo, base, head string) (*vcs.Comparison, error) {
	f.record("CompareRefs")
	if f.onCompare != nil {
		f.onCompare()
	}
	return f.comparison, nil
}

func (f *fakeGateway) GetManifestVersion(_ context.Context, owner, repo, path, ref string) (vcs.ManifestVersion, error) {
	f.record("GetManifestVersion")
	if f.manifestErr != nil {
		return vcs.ManifestVersion{}, f.manifestErr
	}
	mv, ok := f.manifests[ref]
	if !ok {
		return vcs.ManifestVersion{}, vcs.ErrNotFound
	}
	return mv, nil
}
