package vcs

import (
	"context"
	"strings"
	"time"
)

type RepoInfo struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	HTMLURL       string `json:"html_url"`
	DefaultBranch string `json:"default_branch"`
}

type ReleaseRecord struct {
	Tag          string    `json:"tag"`
	Name         string    `json:"name,omitempty"`
	IsPrerelease bool      `json:"prerelease"`
	IsDraft      bool      `json:"draft"`
	PublishedAt  time.Time `json:"published_at"`
	HTMLURL      string    `json:"html_url,omitempty"`
}

type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	HTMLURL string `json:"html_url,omitempty"`
}

// ShortSHA returns the first seven characters of the hash.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

type Comparison struct {
	Status   string
	AheadBy  int
	BehindBy int
	HTMLURL  string
	// Commits are reachable from head but not from base, oldest first.
	Commits []Commit
}

type ManifestVersion struct {
	Version string
	Path    string
	Ref     string
	// SourceLineNumber is 1-based; 0 means the line could not be recovered.
	SourceLineNumber int
	HTMLURL          string
}

type FactsGateway interface {
	// GetRepository fails with ErrNotFound or ErrTransport.
	GetRepository(ctx context.Context, owner, repo string) (RepoInfo, error)

	// ListReleases returns published releases, newest first.
	ListReleases(ctx context.Context, owner, repo string) ([]ReleaseRecord, error)

	// BranchExists returns (false, nil) for a missing branch and an
	// ErrTransport error when existence could not be determined.
	BranchExists(ctx context.Context, owner, repo, branch string) (bool, error)

	// TagExists follows the same contract as BranchExists.
	TagExists(ctx context.Context, owner, repo, tag string) (bool, error)

	// CompareRefs returns nil on any failure, including an error.
	CompareRefs(ctx context.Context, owner, repo, base, head string) (*Comparison, error)

	// GetManifestVersion reads the manifest at path on ref. An empty ref
	// means the default branch.
	GetManifestVersion(ctx context.Context, owner, repo, path, ref string) (ManifestVersion, error)
}
