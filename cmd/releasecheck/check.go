package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/releasecheck/pkg/output"
	"github.com/releasecheck/pkg/release"
	"github.com/releasecheck/pkg/reporter"
	"github.com/releasecheck/pkg/version"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the release checklist for a target version",
		Long: `Runs the release checklist for --target (default: the patch after the latest
release). With --interactive, target versions are read line by line from stdin
and each line starts a new evaluation; results of superseded evaluations are
dropped.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
	cmd.Flags().String("target", "", "Target version, e.g. v1.2.4")
	cmd.Flags().String("base", "", "Base ref the release branch is compared against")
	cmd.Flags().BoolP("interactive", "i", false, "Read target versions from stdin")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	target, _ := cmd.Flags().GetString("target")
	base, _ := cmd.Flags().GetString("base")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if target != "" && !version.IsValid(target) {
		return fmt.Errorf("invalid --target %q: want MAJOR.MINOR.PATCH with optional v prefix", target)
	}

	rep := reporter.New(cfg.Output)
	w := cmd.OutOrStdout()

	if interactive {
		// The observer runs under the session lock: it must not call back
		// into the session, so the header is captured once after loading.
		var header reporter.Report
		session, err := loadSession(cmd.Context(), cfg, false, release.WithObserver(func(cl release.Checklist) {
			r := header
			r.Checklist = &cl
			if err := rep.Report(w, r); err != nil {
				output.Error("render report", "error", err)
			}
		}))
		if err != nil {
			return err
		}
		header = statusReport(session)
		return interact(cmd.Context(), session, cmd.InOrStdin(), cmd.ErrOrStderr(), base)
	}

	session, err := loadSession(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}

	r := statusReport(session)
	if target == "" {
		if r.Suggested == "" {
			return errors.New("no stable release found to suggest a target: pass --target")
		}
		target = r.Suggested
	}

	var cl release.Checklist
	err = output.RunWithSpinner(cmd.Context(), "Checking "+target, func(ctx context.Context) error {
		cl, err = session.Evaluate(ctx, target, base)
		return err
	})
	if err != nil {
		return err
	}

	r.Checklist = &cl
	if err := rep.Report(w, r); err != nil {
		return err
	}
	if cl.Failed() {
		return errChecksFailed
	}
	return nil
}

// interact starts one evaluation per input line. Evaluations run
// concurrently; only the newest one is published.
func interact(ctx context.Context, session *release.Session, in io.Reader, errw io.Writer, base string) error {
	var g errgroup.Group
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !version.IsValid(line) {
			fmt.Fprintf(errw, "invalid version %q: want MAJOR.MINOR.PATCH with optional v prefix\n", line)
			continue
		}

		target := line
		g.Go(func() error {
			_, err := session.Evaluate(ctx, target, base)
			if errors.Is(err, release.ErrSuperseded) {
				output.Debug("evaluation superseded", "target", target)
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if cl, ok := session.Checklist(); ok && cl.Failed() {
		return errChecksFailed
	}
	return nil
}
