package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/releasecheck/pkg/config"
	"github.com/releasecheck/pkg/output"
)

var (
	buildVersion = "dev"
	commit       = "none"
)

// errChecksFailed maps to exit code 1. It is not printed.
var errChecksFailed = errors.New("release checklist has failures")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd())
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChecksFailed):
		return 1
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		return 2
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "releasecheck",
		Short: "Check whether a release is ready to ship",
		Long: `Reads a GitHub repository's releases, branches and manifest and reports
what is still missing before a target version can be released.`,
		Version:       fmt.Sprintf("%s (%s)", buildVersion, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			output.SetupLoggingTo(cmd.ErrOrStderr(), verbose)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultPath, "Path to config file")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("repo", "", "GitHub repo (owner/repo); defaults to $GITHUB_REPOSITORY")
	flags.String("github-token", "", "GitHub token for API access; defaults to $GITHUB_TOKEN")
	flags.String("api-url", "", "GitHub Enterprise API URL")
	flags.String("output", "", "Output format: table | json | markdown")
	flags.String("channel", "", "Release channel suffix for tags, e.g. relchan")
	flags.String("branch-suffix", "", "Suffix appended to the tag to name the release branch")
	flags.String("manifest", "", "Manifest path checked on the release branch")
	flags.Bool("guess-base", true, "Guess the base branch when --base is not given")

	rootCmd.AddCommand(
		newStatusCmd(),
		newCheckCmd(),
		newNextCmd(),
		newClassifyCmd(),
	)
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	cfg = config.MergeFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
