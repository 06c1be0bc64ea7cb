package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/releasecheck/pkg/output"
	"github.com/releasecheck/pkg/release"
	"github.com/releasecheck/pkg/reporter"
	"github.com/releasecheck/pkg/vcs"
)

const DefaultPath = ".releasecheck.yml"

type Config struct {
	Repo                string `yaml:"repo"`
	Token               string `yaml:"-"`
	APIURL              string `yaml:"api-url"`
	Channel             string `yaml:"channel"`
	ReleaseBranchSuffix string `yaml:"release-branch-suffix"`
	Manifest            string `yaml:"manifest"`
	GuessBase           bool   `yaml:"guess-base"`
	Output              string `yaml:"output"`
}

func Default() *Config {
	return &Config{
		Repo:                os.Getenv("GITHUB_REPOSITORY"),
		Token:               os.Getenv("GITHUB_TOKEN"),
		ReleaseBranchSuffix: release.DefaultReleaseBranchSuffix,
		Manifest:            "package.json",
		GuessBase:           true,
		Output:              "table",
	}
}

// Load reads path over the defaults. A missing file is not an error; it is
// only worth a warning when the user named the file.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			output.Warn("config file not found, using defaults", "path", path)
		} else {
			output.Debug("no config file, using defaults", "path", path)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "read config", goerr.V("path", path))
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "parse config", goerr.V("path", path))
	}
	return cfg, nil
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if v, err := flags.GetString("repo"); err == nil && v != "" {
		cfg.Repo = v
	}
	if v, err := flags.GetString("github-token"); err == nil && v != "" {
		cfg.Token = v
	}
	if v, err := flags.GetString("api-url"); err == nil && v != "" {
		cfg.APIURL = v
	}
	if v, err := flags.GetString("channel"); err == nil && flags.Changed("channel") {
		cfg.Channel = v
	}
	if v, err := flags.GetString("branch-suffix"); err == nil && v != "" {
		cfg.ReleaseBranchSuffix = v
	}
	if v, err := flags.GetString("manifest"); err == nil && flags.Changed("manifest") {
		cfg.Manifest = v
	}
	if v, err := flags.GetBool("guess-base"); err == nil && flags.Changed("guess-base") {
		cfg.GuessBase = v
	}
	if v, err := flags.GetString("output"); err == nil && v != "" {
		cfg.Output = v
	}
	return cfg
}

func (c *Config) Validate() error {
	if !slices.Contains(reporter.Formats, c.Output) {
		return goerr.New("unknown output format",
			goerr.V("output", c.Output), goerr.V("supported", reporter.Formats))
	}
	if c.Repo != "" {
		if _, _, err := vcs.ParseRepo(c.Repo); err != nil {
			return goerr.Wrap(err, "invalid repo")
		}
	}
	if c.ReleaseBranchSuffix == "" {
		return goerr.New("release-branch-suffix must not be empty")
	}
	return nil
}

func (c *Config) Conventions() release.Conventions {
	return release.Conventions{
		Channel:             c.Channel,
		ReleaseBranchSuffix: c.ReleaseBranchSuffix,
		GuessBase:           c.GuessBase,
	}
}
