package vcs

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrTransport = errors.New("transport failure")
)

type ErrorKind string

const (
	KindNone      ErrorKind = ""
	KindNotFound  ErrorKind = "not-found"
	KindTransport ErrorKind = "transport"
)

// KindOf classifies err. Errors that are neither ErrNotFound nor ErrTransport
// count as transport failures.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindTransport
	}
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// classify tags a go-github failure with its error kind.
func classify(resp *github.Response, err error, msg string, opts ...goerr.Option) error {
	if isNotFound(resp, err) {
		return goerr.Wrap(ErrNotFound, msg, opts...)
	}
	return goerr.Wrap(errors.Join(ErrTransport, err), msg, opts...)
}
