package release

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/releasecheck/pkg/output"
	"github.com/releasecheck/pkg/vcs"
	"github.com/releasecheck/pkg/version"
)

var (
	// ErrNotLoaded is returned by Evaluate before a repository was loaded.
	ErrNotLoaded = errors.New("no repository loaded")

	// ErrSuperseded is returned when a newer load or evaluation started
	// while this one was in flight. Its result was discarded.
	ErrSuperseded = errors.New("evaluation superseded by a newer one")
)

type State int

const (
	StateIdle State = iota
	StateRepoLoaded
	StateStatusComputed
	StateChecklistPending
	StateChecklistResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRepoLoaded:
		return "repo-loaded"
	case StateStatusComputed:
		return "status-computed"
	case StateChecklistPending:
		return "checklist-pending"
	case StateChecklistResolved:
		return "checklist-resolved"
	default:
		return "unknown"
	}
}

type Option func(*Session)

func WithConventions(conv Conventions) Option {
	return func(s *Session) {
		s.conv = conv
	}
}

func WithManifestPath(path string) Option {
	return func(s *Session) {
		s.manifestPath = path
	}
}

// WithObserver registers fn to receive every checklist the session
// publishes. fn runs under the session lock and must not call back into it.
func WithObserver(fn func(Checklist)) Option {
	return func(s *Session) {
		s.observers = append(s.observers, fn)
	}
}

// Session tracks one repository across evaluation cycles. Repository facts
// are fetched once by Load and reused by every Evaluate; only the checks hit
// the network again.
type Session struct {
	gateway      vcs.FactsGateway
	conv         Conventions
	manifestPath string
	observers    []func(Checklist)

	mu        sync.Mutex
	state     State
	owner     string
	repo      string
	repoInfo  vcs.RepoInfo
	releases  []vcs.ReleaseRecord
	snapshot  Snapshot
	started   uint64
	checklist *Checklist
}

func NewSession(gateway vcs.FactsGateway, opts ...Option) *Session {
	s := &Session{
		gateway:      gateway,
		conv:         DefaultConventions(""),
		manifestPath: "package.json",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches repository metadata and releases and computes the snapshot.
// Any checklist from a previous repository is dropped and in-flight
// evaluations become stale. A load overtaken by a newer Load returns
// ErrSuperseded and leaves the newer repository in place.
func (s *Session) Load(ctx context.Context, owner, repo string) (Snapshot, error) {
	s.mu.Lock()
	s.started++
	seq := s.started
	s.state = StateRepoLoaded
	s.checklist = nil
	s.mu.Unlock()

	info, releases, err := s.fetch(ctx, owner, repo)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.started {
		output.Debug("discarding stale repository load", "owner", owner, "repo", repo, "seq", seq, "latest", s.started)
		return Snapshot{}, ErrSuperseded
	}
	if err != nil {
		s.state = StateIdle
		return Snapshot{}, goerr.Wrap(err, "load repository", goerr.V("owner", owner), goerr.V("repo", repo))
	}

	snap := NewSnapshot(releases, s.conv)
	s.owner, s.repo = owner, repo
	s.repoInfo = info
	s.releases = releases
	s.snapshot = snap
	s.state = StateStatusComputed

	output.Debug("repository loaded", "owner", owner, "repo", repo, "releases", len(releases))
	return snap, nil
}

func (s *Session) fetch(ctx context.Context, owner, repo string) (vcs.RepoInfo, []vcs.ReleaseRecord, error) {
	info, err := s.gateway.GetRepository(ctx, owner, repo)
	if err != nil {
		return vcs.RepoInfo{}, nil, err
	}
	releases, err := s.gateway.ListReleases(ctx, owner, repo)
	if err != nil {
		return vcs.RepoInfo{}, nil, err
	}
	return info, releases, nil
}

// Preview derives the plan for target without touching the network.
func (s *Session) Preview(target, base string) (Plan, error) {
	v, err := version.Parse(target)
	if err != nil {
		return Plan{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state < StateStatusComputed {
		return Plan{}, ErrNotLoaded
	}
	return NewPlan(s.contextFor(v, base)), nil
}

// contextFor must be called with s.mu held.
func (s *Session) contextFor(target version.Version, base string) EvaluationContext {
	return EvaluationContext{
		Owner:        s.owner,
		Repo:         s.repo,
		RepoURL:      s.repoInfo.HTMLURL,
		Releases:     slices.Clone(s.releases),
		Conventions:  s.conv,
		ManifestPath: s.manifestPath,
		Target:       target,
		BaseRef:      base,
	}
}

// Evaluate runs a new evaluation cycle for target. An invalid target returns
// version.ErrInvalidFormat and leaves the state and last checklist as they
// were. A cycle overtaken by a newer one returns its checklist together with
// ErrSuperseded and is never published.
func (s *Session) Evaluate(ctx context.Context, target, base string) (Checklist, error) {
	v, err := version.Parse(target)
	if err != nil {
		return Checklist{}, err
	}

	s.mu.Lock()
	if s.state < StateStatusComputed {
		s.mu.Unlock()
		return Checklist{}, ErrNotLoaded
	}
	s.started++
	seq := s.started
	ec := s.contextFor(v, base)
	s.state = StateChecklistPending
	s.mu.Unlock()

	cl := Evaluate(ctx, s.gateway, ec)
	cl.Seq = seq

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.started {
		output.Debug("discarding stale checklist", "seq", seq, "latest", s.started)
		return cl, ErrSuperseded
	}
	s.checklist = &cl
	s.state = StateChecklistResolved
	for _, fn := range s.observers {
		fn(cl)
	}
	return cl, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Session) Repository() vcs.RepoInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repoInfo
}

// Checklist returns the latest published checklist.
func (s *Session) Checklist() (Checklist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checklist == nil {
		return Checklist{}, false
	}
	return *s.checklist, true
}
