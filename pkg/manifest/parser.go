// Package manifest reads the version field out of project manifest files and
// locates the line it was declared on.
package manifest

import (
	"errors"
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrNoVersion means the manifest parsed but declares no version.
var ErrNoVersion = errors.New("manifest has no version field")

// ErrMalformed means the manifest was fetched but could not be decoded.
var ErrMalformed = errors.New("malformed manifest")

// ErrUnsupported means no parser handles the manifest's file name.
var ErrUnsupported = errors.New("unsupported manifest")

type Parser interface {
	// Version extracts the version field from the raw file contents.
	Version(data []byte) (string, error)

	// Marker is the token a line must contain to be the version declaration.
	Marker() string

	// Separator is the key/value separator of the format.
	Separator() string

	Format() string
}

type Result struct {
	Version string
	// Line is the 1-based line of the declaration, 0 when not found.
	Line int
}

func NewParser(manifestPath string) (Parser, error) {
	base := strings.ToLower(path.Base(manifestPath))
	switch path.Ext(base) {
	case ".json":
		return &JSONParser{}, nil
	case ".yaml", ".yml":
		return &YAMLParser{}, nil
	case ".toml":
		return &TOMLParser{}, nil
	default:
		return nil, goerr.Wrap(ErrUnsupported, "no parser for manifest", goerr.V("path", manifestPath))
	}
}

// Read parses data as the manifest at manifestPath.
func Read(manifestPath string, data []byte) (Result, error) {
	p, err := NewParser(manifestPath)
	if err != nil {
		return Result{}, err
	}
	v, err := p.Version(data)
	if err != nil {
		return Result{}, goerr.Wrap(err, "read manifest version", goerr.V("path", manifestPath))
	}
	return Result{
		Version: v,
		Line:    FindVersionLine(data, p.Marker(), p.Separator()),
	}, nil
}
