package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action behind a spinner titled title. Without a TTY the
// action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	errCh := make(chan error, 1)
	doneCh := make(chan struct{})
	go func() {
		errCh <- action(ctx)
		close(doneCh)
	}()

	spinnerErr := spinner.New().Title(title).Action(func() {
		select {
		case <-ctx.Done():
		case <-doneCh:
		}
	}).Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
