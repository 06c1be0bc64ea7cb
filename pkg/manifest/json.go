package manifest

import (
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// JSONParser handles package.json style manifests.
type JSONParser struct{}

func (p *JSONParser) Format() string    { return "json" }
func (p *JSONParser) Marker() string    { return `"version"` }
func (p *JSONParser) Separator() string { return ":" }

func (p *JSONParser) Version(data []byte) (string, error) {
	var doc struct {
		Version *string `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", goerr.Wrap(errors.Join(ErrMalformed, err), "decode json manifest")
	}
	if doc.Version == nil || *doc.Version == "" {
		return "", ErrNoVersion
	}
	return *doc.Version, nil
}
