package reporter

import (
	"encoding/json"
	"io"
)

type JSONReporter struct{}

func (r *JSONReporter) Report(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	type output struct {
		Report
		Failed bool `json:"failed"`
	}

	return enc.Encode(output{
		Report: rep,
		Failed: rep.Checklist != nil && rep.Checklist.Failed(),
	})
}
