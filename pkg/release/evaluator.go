package release

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/releasecheck/pkg/output"
	"github.com/releasecheck/pkg/vcs"
)

// Checklist is the result of one evaluation cycle.
type Checklist struct {
	Seq   uint64        `json:"seq"`
	Plan  Plan          `json:"plan"`
	Items []CheckResult `json:"items"`
}

// Item returns the result for id.
func (c Checklist) Item(id CheckID) (CheckResult, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return CheckResult{}, false
}

// Failed reports whether any item failed. Not-applicable items do not count.
func (c Checklist) Failed() bool {
	for _, item := range c.Items {
		if item.Status == StatusFail {
			return true
		}
	}
	return false
}

type checkFunc func(ctx context.Context, gw vcs.FactsGateway, ec EvaluationContext, plan Plan) CheckResult

// run executes fn, converting a panic into a failed result so one broken
// check never takes the others down.
func run(ctx context.Context, id CheckID, fn checkFunc, gw vcs.FactsGateway, ec EvaluationContext, plan Plan) (res CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			output.Error("panic in check", "check", id, "recover", r, "stack", string(debug.Stack()))
			res = CheckResult{
				ID:     id,
				Status: StatusFail,
				Detail: fmt.Sprintf("check %s crashed: %v", id, r),
			}
		}
	}()

	res = fn(ctx, gw, ec, plan)
	res.ID = id
	if res.Status == StatusFail {
		output.Warn("check failed", "check", id, "detail", res.Detail, "kind", res.ErrKind)
	} else {
		output.Debug("check resolved", "check", id, "status", res.Status)
	}
	return res
}

// Evaluate derives the plan for ec and runs the four checks. The branch and
// published-release checks start together; the manifest and cherry-pick
// checks start together once the branch is known to exist. No check error
// escapes: every item resolves to pass, fail or not-applicable.
func Evaluate(ctx context.Context, gw vcs.FactsGateway, ec EvaluationContext) Checklist {
	plan := NewPlan(ec)

	var (
		branch, manifest, cherry, published CheckResult
		g                                   errgroup.Group
	)

	g.Go(func() error {
		branch = run(ctx, CheckBranchExists, checkBranchExists, gw, ec, plan)
		if !branch.Passed() {
			skip := fmt.Sprintf("skipped: branch %s is not available", plan.ReleaseBranch)
			manifest = notApplicable(CheckManifestVersion, skip)
			cherry = notApplicable(CheckCherryPicks, skip)
			return nil
		}

		var dependents errgroup.Group
		dependents.Go(func() error {
			manifest = run(ctx, CheckManifestVersion, checkManifestVersion, gw, ec, plan)
			return nil
		})
		dependents.Go(func() error {
			cherry = run(ctx, CheckCherryPicks, checkCherryPicks, gw, ec, plan)
			return nil
		})
		return dependents.Wait()
	})
	g.Go(func() error {
		published = run(ctx, CheckPublishedRelease, checkPublishedRelease, gw, ec, plan)
		return nil
	})
	_ = g.Wait()

	return Checklist{
		Plan:  plan,
		Items: []CheckResult{branch, manifest, cherry, published},
	}
}
