package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/releasecheck/pkg/output"
	"github.com/releasecheck/pkg/vcs"
)

type TableReporter struct{}

func (r *TableReporter) Report(w io.Writer, rep Report) error {
	fmt.Fprintf(w, "%s %s\n", output.StyleHeading.Render("Repository"), output.StyleNoun.Render(repoName(rep)))
	fmt.Fprintf(w, "  latest release:     %s\n", releaseLabel(rep.Snapshot.LatestRelease))
	fmt.Fprintf(w, "  latest pre-release: %s\n", releaseLabel(rep.Snapshot.LatestPrerelease))
	if rep.Suggested != "" {
		fmt.Fprintf(w, "  suggested target:   %s\n", output.StyleNoun.Render(rep.Suggested))
	}

	cl := rep.Checklist
	if cl == nil {
		return nil
	}

	plan := cl.Plan
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", output.StyleHeading.Render("Target"), output.StyleNoun.Render(plan.Target.String()))
	fmt.Fprintf(w, "  tag:            %s\n", plan.TargetTag)
	fmt.Fprintf(w, "  release branch: %s\n", plan.ReleaseBranch)
	if plan.BaseBranch != "" {
		base := plan.BaseBranch
		if !plan.BaseSupplied {
			base += output.StyleDim.Render(" (guessed)")
		}
		fmt.Fprintf(w, "  base branch:    %s\n", base)
	}
	if plan.LatestRelease != "" {
		fmt.Fprintf(w, "  bump:           %s from %s\n", plan.Bump, plan.LatestRelease)
		if !plan.AheadOfLatest {
			fmt.Fprintf(w, "  %s\n", output.StatusStyle(output.StatusFail).Render("target does not sort after the latest release"))
		}
	}
	fmt.Fprintln(w)

	tbl := output.NewTable("", "CHECK", "STATUS", "DETAIL")
	for _, item := range cl.Items {
		word := statusWord(item.Status)
		tbl.Row(
			output.StatusSymbol(word),
			item.Title(),
			output.StatusStyle(word).Render(word),
			item.Detail,
		)
	}
	fmt.Fprintln(w, tbl.String())

	for _, item := range cl.Items {
		if item.Remediation == "" && len(item.Links) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", output.StyleHeading.Render(item.Title()))
		if item.Remediation != "" {
			fmt.Fprintf(w, "  fix:  %s\n", item.Remediation)
		}
		for _, link := range item.Links {
			fmt.Fprintf(w, "  link: %s\n", output.StyleDim.Render(link))
		}
	}
	return nil
}

func releaseLabel(r *vcs.ReleaseRecord) string {
	if r == nil {
		return output.StyleDim.Render("(none)")
	}
	parts := []string{output.StyleNoun.Render(r.Tag)}
	if !r.PublishedAt.IsZero() {
		parts = append(parts, output.StyleDim.Render(r.PublishedAt.UTC().Format("2006-01-02")))
	}
	return strings.Join(parts, " ")
}
