package manifest

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// TOMLParser handles Cargo.toml and pyproject.toml. The first non-empty of
// version, package.version, project.version and tool.poetry.version wins.
type TOMLParser struct{}

func (p *TOMLParser) Format() string    { return "toml" }
func (p *TOMLParser) Marker() string    { return "version" }
func (p *TOMLParser) Separator() string { return "=" }

type versionTable struct {
	Version string `toml:"version"`
}

func (p *TOMLParser) Version(data []byte) (string, error) {
	var doc struct {
		Version string       `toml:"version"`
		Package versionTable `toml:"package"`
		Project versionTable `toml:"project"`
		Tool    struct {
			Poetry versionTable `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", goerr.Wrap(errors.Join(ErrMalformed, err), "decode toml manifest")
	}

	for _, v := range []string{doc.Version, doc.Package.Version, doc.Project.Version, doc.Tool.Poetry.Version} {
		if v != "" {
			return v, nil
		}
	}
	return "", ErrNoVersion
}
