package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/releasecheck/pkg/manifest"
	"github.com/releasecheck/pkg/vcs"
)

type CheckID string

const (
	CheckBranchExists     CheckID = "branch-exists"
	CheckManifestVersion  CheckID = "manifest-version"
	CheckCherryPicks      CheckID = "cherry-picks"
	CheckPublishedRelease CheckID = "published-release"
)

// CheckOrder is the order checklist items are reported in.
var CheckOrder = []CheckID{
	CheckBranchExists,
	CheckManifestVersion,
	CheckCherryPicks,
	CheckPublishedRelease,
}

var checkTitles = map[CheckID]string{
	CheckBranchExists:     "Release branch exists",
	CheckManifestVersion:  "Manifest version matches",
	CheckCherryPicks:      "Cherry-picked commits",
	CheckPublishedRelease: "Release published",
}

func (id CheckID) Title() string {
	if t, ok := checkTitles[id]; ok {
		return t
	}
	return string(id)
}

type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	// StatusNotApplicable marks a check skipped for missing prerequisites,
	// which is distinct from failing it.
	StatusNotApplicable Status = "not-applicable"
)

type CheckResult struct {
	ID          CheckID       `json:"id"`
	Status      Status        `json:"status"`
	Detail      string        `json:"detail"`
	Remediation string        `json:"remediation,omitempty"`
	Links       []string      `json:"links,omitempty"`
	ErrKind     vcs.ErrorKind `json:"error_kind,omitempty"`
	Commits     []vcs.Commit  `json:"commits,omitempty"`
}

func (r CheckResult) Passed() bool {
	return r.Status == StatusPass
}

func (r CheckResult) Title() string {
	return r.ID.Title()
}

func pass(id CheckID, detail string, links ...string) CheckResult {
	return CheckResult{ID: id, Status: StatusPass, Detail: detail, Links: links}
}

func fail(id CheckID, detail, remediation string, links ...string) CheckResult {
	return CheckResult{ID: id, Status: StatusFail, Detail: detail, Remediation: remediation, Links: links}
}

func notApplicable(id CheckID, detail string) CheckResult {
	return CheckResult{ID: id, Status: StatusNotApplicable, Detail: detail}
}

// hostFailure is the generic result for a check whose remote call failed.
func hostFailure(id CheckID, what string, err error) CheckResult {
	return CheckResult{
		ID:          id,
		Status:      StatusFail,
		Detail:      fmt.Sprintf("could not determine %s: request to the source host failed", what),
		Remediation: "re-run the check; pass --verbose to see the underlying error",
		ErrKind:     vcs.KindOf(err),
	}
}

func checkBranchExists(ctx context.Context, gw vcs.FactsGateway, ec EvaluationContext, plan Plan) CheckResult {
	ok, err := gw.BranchExists(ctx, ec.Owner, ec.Repo, plan.ReleaseBranch)
	if err != nil {
		res := hostFailure(CheckBranchExists, "whether branch "+plan.ReleaseBranch+" exists", err)
		res.Remediation = createBranchCommand(plan)
		return res
	}
	if !ok {
		return fail(CheckBranchExists,
			fmt.Sprintf("branch %s does not exist", plan.ReleaseBranch),
			createBranchCommand(plan))
	}
	return pass(CheckBranchExists,
		fmt.Sprintf("branch %s exists", plan.ReleaseBranch),
		ec.branchURL(plan.ReleaseBranch))
}

func createBranchCommand(plan Plan) string {
	if plan.BaseBranch == "" {
		return fmt.Sprintf("git checkout -b %[1]s && git push -u origin %[1]s", plan.ReleaseBranch)
	}
	return fmt.Sprintf("git fetch origin %[2]s && git checkout -b %[1]s FETCH_HEAD && git push -u origin %[1]s",
		plan.ReleaseBranch, plan.BaseBranch)
}

func checkManifestVersion(ctx context.Context, gw vcs.FactsGateway, ec EvaluationContext, plan Plan) CheckResult {
	if ec.ManifestPath == "" {
		return notApplicable(CheckManifestVersion, "no manifest path configured")
	}

	mv, err := gw.GetManifestVersion(ctx, ec.Owner, ec.Repo, ec.ManifestPath, plan.ReleaseBranch)
	switch {
	case errors.Is(err, vcs.ErrNotFound):
		res := fail(CheckManifestVersion,
			fmt.Sprintf("%s not found on %s", ec.ManifestPath, plan.ReleaseBranch),
			fmt.Sprintf("add %s to %s or point --manifest at the right file", ec.ManifestPath, plan.ReleaseBranch))
		res.ErrKind = vcs.KindNotFound
		return res
	case errors.Is(err, manifest.ErrNoVersion), errors.Is(err, manifest.ErrUnsupported):
		return fail(CheckManifestVersion,
			fmt.Sprintf("%s on %s: %v", ec.ManifestPath, plan.ReleaseBranch, rootCause(err)),
			fmt.Sprintf("declare version %s in %s", plan.Target.Core(), ec.ManifestPath),
			ec.blobURL(plan.ReleaseBranch, ec.ManifestPath))
	case errors.Is(err, manifest.ErrMalformed):
		return fail(CheckManifestVersion,
			fmt.Sprintf("%s on %s could not be decoded: %v", ec.ManifestPath, plan.ReleaseBranch, err),
			fmt.Sprintf("fix the syntax of %s on %s", ec.ManifestPath, plan.ReleaseBranch),
			ec.blobURL(plan.ReleaseBranch, ec.ManifestPath))
	case err != nil:
		return hostFailure(CheckManifestVersion, "the manifest version", err)
	}

	link := mv.HTMLURL
	if link == "" {
		link = ec.blobURL(plan.ReleaseBranch, ec.ManifestPath)
	}
	if mv.SourceLineNumber > 0 {
		link = fmt.Sprintf("%s#L%d", link, mv.SourceLineNumber)
	}

	want := strings.TrimPrefix(plan.Target.String(), "v")
	got := strings.TrimPrefix(mv.Version, "v")
	if got != want {
		return fail(CheckManifestVersion,
			fmt.Sprintf("%s on %s declares %s, expected %s", ec.ManifestPath, plan.ReleaseBranch, got, want),
			fmt.Sprintf("set the version in %s to %s and push to %s", ec.ManifestPath, want, plan.ReleaseBranch),
			link)
	}
	return pass(CheckManifestVersion,
		fmt.Sprintf("%s on %s declares %s", ec.ManifestPath, plan.ReleaseBranch, got),
		link)
}

func rootCause(err error) error {
	for _, sentinel := range []error{manifest.ErrNoVersion, manifest.ErrUnsupported} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}

func checkCherryPicks(ctx context.Context, gw vcs.FactsGateway, ec EvaluationContext, plan Plan) CheckResult {
	if plan.BaseBranch == "" {
		return notApplicable(CheckCherryPicks, "no base branch supplied")
	}

	// A nil comparison is reported as an empty delta: no cherry-picks is a
	// valid state for a release branch.
	cmp, err := gw.CompareRefs(ctx, ec.Owner, ec.Repo, plan.BaseBranch, plan.ReleaseBranch)
	if err != nil || cmp == nil || len(cmp.Commits) == 0 {
		return pass(CheckCherryPicks,
			fmt.Sprintf("no commits on %s that are not on %s", plan.ReleaseBranch, plan.BaseBranch))
	}

	lines := make([]string, 0, len(cmp.Commits))
	links := make([]string, 0, len(cmp.Commits)+1)
	if cmp.HTMLURL != "" {
		links = append(links, cmp.HTMLURL)
	}
	for _, c := range cmp.Commits {
		lines = append(lines, c.ShortSHA()+" "+c.Subject())
		if c.HTMLURL != "" {
			links = append(links, c.HTMLURL)
		}
	}

	res := pass(CheckCherryPicks,
		fmt.Sprintf("%d commit(s) on %s not on %s:\n%s",
			len(cmp.Commits), plan.ReleaseBranch, plan.BaseBranch, strings.Join(lines, "\n")),
		links...)
	res.Commits = cmp.Commits
	return res
}

func checkPublishedRelease(ctx context.Context, gw vcs.FactsGateway, ec EvaluationContext, plan Plan) CheckResult {
	for _, r := range ec.Releases {
		if r.Tag != plan.TargetTag {
			continue
		}
		link := r.HTMLURL
		if link == "" {
			link = ec.releaseURL(r.Tag)
		}
		kind := "release"
		if r.IsPrerelease {
			kind = "pre-release"
		}
		detail := fmt.Sprintf("%s %s is published", kind, r.Tag)
		if !r.PublishedAt.IsZero() {
			detail += " (" + r.PublishedAt.UTC().Format("2006-01-02") + ")"
		}
		return pass(CheckPublishedRelease, detail, link)
	}

	publish := fmt.Sprintf("gh release create %s --repo %s/%s --verify-tag", plan.TargetTag, ec.Owner, ec.Repo)

	tagged, err := gw.TagExists(ctx, ec.Owner, ec.Repo, plan.TargetTag)
	switch {
	case err != nil:
		return fail(CheckPublishedRelease,
			fmt.Sprintf("no release %s is published", plan.TargetTag),
			fmt.Sprintf("git tag %[1]s origin/%[2]s && git push origin %[1]s && %[3]s", plan.TargetTag, plan.ReleaseBranch, publish))
	case tagged:
		return fail(CheckPublishedRelease,
			fmt.Sprintf("tag %s is pushed but no release is published for it", plan.TargetTag),
			publish)
	default:
		return fail(CheckPublishedRelease,
			fmt.Sprintf("no release %s is published and the tag does not exist", plan.TargetTag),
			fmt.Sprintf("git tag %[1]s origin/%[2]s && git push origin %[1]s && %[3]s", plan.TargetTag, plan.ReleaseBranch, publish))
	}
}
