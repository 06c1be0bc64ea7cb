package reporter

import (
	"io"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/releasecheck/pkg/release"
)

var funcs = template.FuncMap{
	// task renders the GitHub task-list prefix and title. Not-applicable
	// items stay unchecked and are struck through.
	"task": func(item release.CheckResult) string {
		switch item.Status {
		case release.StatusPass:
			return "[x] **" + item.Title() + "**"
		case release.StatusFail:
			return "[ ] **" + item.Title() + "**"
		default:
			return "[ ] ~~**" + item.Title() + "**~~ (n/a)"
		}
	},
	"indent": func(s string) string {
		return strings.ReplaceAll(s, "\n", "\n  ")
	},
}

var markdownTmpl = template.Must(template.New("markdown").Funcs(funcs).Parse(`## Release status: {{ .Name }}

| Detail | Value |
|--------|-------|
| Latest release | {{ with .Snapshot.LatestRelease }}[` + "`{{ .Tag }}`" + `]({{ .HTMLURL }}){{ else }}(none){{ end }} |
| Latest pre-release | {{ with .Snapshot.LatestPrerelease }}[` + "`{{ .Tag }}`" + `]({{ .HTMLURL }}){{ else }}(none){{ end }} |
{{- if .Suggested }}
| Suggested target | ` + "`{{ .Suggested }}`" + ` |
{{- end }}
{{ with .Checklist }}
### Checklist for ` + "`{{ .Plan.Target }}`" + `

Release branch ` + "`{{ .Plan.ReleaseBranch }}`" + `, tag ` + "`{{ .Plan.TargetTag }}`" + `{{ if .Plan.BaseBranch }}, base ` + "`{{ .Plan.BaseBranch }}`" + `{{ end }}.
{{ range .Items }}
- {{ task . }}: {{ indent .Detail }}
{{- if .Remediation }}
  ` + "```" + `
  {{ .Remediation }}
  ` + "```" + `
{{- end }}
{{- range .Links }}
  - {{ . }}
{{- end }}
{{- end }}
{{ end }}`))

type MarkdownReporter struct{}

type markdownData struct {
	Report
	Name string
}

func (r *MarkdownReporter) Report(w io.Writer, rep Report) error {
	if err := markdownTmpl.Execute(w, markdownData{Report: rep, Name: repoName(rep)}); err != nil {
		return goerr.Wrap(err, "render markdown report")
	}
	return nil
}
