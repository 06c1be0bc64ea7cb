package vcs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/releasecheck/pkg/manifest"
	"github.com/releasecheck/pkg/output"
)

type GitHubClient struct {
	client *github.Client
}

func NewGitHubClient(client *github.Client) *GitHubClient {
	return &GitHubClient{client: client}
}

// NewGitHubClientFromToken builds a client for github.com, or for a GitHub
// Enterprise instance when apiURL is set. token may be empty.
func NewGitHubClientFromToken(token, apiURL string, httpClient *http.Client) (*GitHubClient, error) {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, goerr.Wrap(err, "configure api url", goerr.V("api_url", apiURL))
		}
	}
	return NewGitHubClient(client), nil
}

func (g *GitHubClient) GetRepository(ctx context.Context, owner, repo string) (RepoInfo, error) {
	output.Debug("get repository", "owner", owner, "repo", repo)

	r, resp, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return RepoInfo{}, classify(resp, err, "get repository", goerr.V("owner", owner), goerr.V("repo", repo))
	}
	return RepoInfo{
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		HTMLURL:       r.GetHTMLURL(),
		DefaultBranch: r.GetDefaultBranch(),
	}, nil
}

func (g *GitHubClient) ListReleases(ctx context.Context, owner, repo string) ([]ReleaseRecord, error) {
	var releases []ReleaseRecord
	opts := &github.ListOptions{PerPage: 100}

	for {
		output.Debug("list releases", "owner", owner, "repo", repo, "page", opts.Page)
		page, resp, err := g.client.Repositories.ListReleases(ctx, owner, repo, opts)
		if err != nil {
			return nil, classify(resp, err, "list releases", goerr.V("owner", owner), goerr.V("repo", repo))
		}
		for _, r := range page {
			if r.GetDraft() {
				continue
			}
			releases = append(releases, ReleaseRecord{
				Tag:          r.GetTagName(),
				Name:         r.GetName(),
				IsPrerelease: r.GetPrerelease(),
				PublishedAt:  r.GetPublishedAt().Time,
				HTMLURL:      r.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return releases, nil
}

func (g *GitHubClient) BranchExists(ctx context.Context, owner, repo, branch string) (bool, error) {
	output.Debug("probe branch", "owner", owner, "repo", repo, "branch", branch)

	_, resp, err := g.client.Repositories.GetBranch(ctx, owner, repo, branch, 1)
	if err != nil {
		if isNotFound(resp, err) {
			return false, nil
		}
		return false, classify(resp, err, "get branch", goerr.V("branch", branch))
	}
	return true, nil
}

func (g *GitHubClient) TagExists(ctx context.Context, owner, repo, tag string) (bool, error) {
	output.Debug("probe tag", "owner", owner, "repo", repo, "tag", tag)

	ref, resp, err := g.client.Git.GetRef(ctx, owner, repo, "tags/"+tag)
	if err != nil {
		if isNotFound(resp, err) {
			return false, nil
		}
		return false, classify(resp, err, "get tag ref", goerr.V("tag", tag))
	}
	// The refs API falls back to prefix matching; only an exact ref counts.
	return ref.GetRef() == "refs/tags/"+tag, nil
}

func (g *GitHubClient) CompareRefs(ctx context.Context, owner, repo, base, head string) (*Comparison, error) {
	var result *Comparison
	opts := &github.ListOptions{PerPage: 100}

	for {
		comparison, resp, err := g.client.Repositories.CompareCommits(ctx, owner, repo, base, head, opts)
		if err != nil {
			output.Debug("comparison unavailable", "base", base, "head", head, "error", err)
			return nil, nil
		}
		if result == nil {
			result = &Comparison{
				Status:   comparison.GetStatus(),
				AheadBy:  comparison.GetAheadBy(),
				BehindBy: comparison.GetBehindBy(),
				HTMLURL:  comparison.GetHTMLURL(),
			}
		}
		for _, c := range comparison.Commits {
			result.Commits = append(result.Commits, Commit{
				SHA:     c.GetSHA(),
				Message: c.GetCommit().GetMessage(),
				HTMLURL: c.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

func (g *GitHubClient) GetManifestVersion(ctx context.Context, owner, repo, path, ref string) (ManifestVersion, error) {
	output.Debug("get manifest", "owner", owner, "repo", repo, "path", path, "ref", ref)

	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}
	file, _, resp, err := g.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return ManifestVersion{}, classify(resp, err, "get manifest", goerr.V("path", path), goerr.V("ref", ref))
	}
	if file == nil {
		return ManifestVersion{}, goerr.Wrap(ErrNotFound, "manifest path is a directory", goerr.V("path", path))
	}

	content, err := file.GetContent()
	if err != nil {
		return ManifestVersion{}, goerr.Wrap(err, "decode manifest content", goerr.V("path", path))
	}

	parsed, err := manifest.Read(path, []byte(content))
	if err != nil {
		return ManifestVersion{}, err
	}

	return ManifestVersion{
		Version:          parsed.Version,
		Path:             path,
		Ref:              ref,
		SourceLineNumber: parsed.Line,
		HTMLURL:          file.GetHTMLURL(),
	}, nil
}

// ParseRepo accepts "owner/repo" or a GitHub URL.
func ParseRepo(repoURL string) (owner, repo string, err error) {
	repoURL = strings.TrimSpace(repoURL)
	repoURL = strings.TrimPrefix(repoURL, "https://")
	repoURL = strings.TrimPrefix(repoURL, "http://")
	repoURL = strings.TrimPrefix(repoURL, "github.com/")
	repoURL = strings.TrimSuffix(repoURL, "/")
	repoURL = strings.TrimSuffix(repoURL, ".git")

	parts := strings.SplitN(repoURL, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q: want owner/repo", repoURL)
	}
	return parts[0], parts[1], nil
}
