package reporter

import (
	"io"

	"github.com/releasecheck/pkg/output"
	"github.com/releasecheck/pkg/release"
	"github.com/releasecheck/pkg/vcs"
)

// Formats lists the accepted --output values.
var Formats = []string{"table", "json", "markdown"}

// Report is what one command prints. Checklist is nil for the status command.
type Report struct {
	Repository vcs.RepoInfo       `json:"repository"`
	Snapshot   release.Snapshot   `json:"snapshot"`
	Suggested  string             `json:"suggested_target,omitempty"`
	Checklist  *release.Checklist `json:"checklist,omitempty"`
}

type Reporter interface {
	Report(w io.Writer, r Report) error
}

func New(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "markdown":
		return &MarkdownReporter{}
	default:
		return &TableReporter{}
	}
}

func repoName(r Report) string {
	if r.Repository.FullName != "" {
		return r.Repository.FullName
	}
	return r.Repository.Owner + "/" + r.Repository.Name
}

func statusWord(s release.Status) string {
	switch s {
	case release.StatusPass:
		return output.StatusPass
	case release.StatusFail:
		return output.StatusFail
	default:
		return output.StatusSkipped
	}
}
