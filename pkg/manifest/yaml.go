package manifest

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// YAMLParser handles Chart.yaml / pubspec.yaml style manifests.
type YAMLParser struct{}

func (p *YAMLParser) Format() string    { return "yaml" }
func (p *YAMLParser) Marker() string    { return "version" }
func (p *YAMLParser) Separator() string { return ":" }

func (p *YAMLParser) Version(data []byte) (string, error) {
	var doc struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", goerr.Wrap(errors.Join(ErrMalformed, err), "decode yaml manifest")
	}
	if doc.Version == "" {
		return "", ErrNoVersion
	}
	return doc.Version, nil
}
