package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/releasecheck/pkg/config"
	"github.com/releasecheck/pkg/output"
	"github.com/releasecheck/pkg/release"
	"github.com/releasecheck/pkg/reporter"
	"github.com/releasecheck/pkg/vcs"
)

// newGateway is swapped in tests.
var newGateway = func(cfg *config.Config) (vcs.FactsGateway, error) {
	return vcs.NewGitHubClientFromToken(cfg.Token, cfg.APIURL, http.DefaultClient)
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the latest releases and the suggested next version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			session, err := loadSession(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			return reporter.New(cfg.Output).Report(cmd.OutOrStdout(), statusReport(session))
		},
	}
}

// loadSession builds the gateway and loads the configured repository.
// The spinner reads the terminal, so callers consuming stdin pass spin=false.
func loadSession(ctx context.Context, cfg *config.Config, spin bool, opts ...release.Option) (*release.Session, error) {
	if cfg.Repo == "" {
		return nil, errors.New("no repository: pass --repo owner/repo or set GITHUB_REPOSITORY")
	}
	owner, repo, err := vcs.ParseRepo(cfg.Repo)
	if err != nil {
		return nil, err
	}
	gw, err := newGateway(cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]release.Option{
		release.WithConventions(cfg.Conventions()),
		release.WithManifestPath(cfg.Manifest),
	}, opts...)
	session := release.NewSession(gw, opts...)

	load := func(ctx context.Context) error {
		_, err := session.Load(ctx, owner, repo)
		return err
	}
	if spin {
		err = output.RunWithSpinner(ctx, "Loading "+owner+"/"+repo, load)
	} else {
		err = load(ctx)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func statusReport(session *release.Session) reporter.Report {
	snap := session.Snapshot()
	rep := reporter.Report{
		Repository: session.Repository(),
		Snapshot:   snap,
	}
	if next, ok := snap.SuggestedTarget(); ok {
		rep.Suggested = next.String()
	}
	return rep
}
