package errhandler

import (
	"context"
	"errors"
	"os"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/hance08/payledger/internal/feed"
	"github.com/hance08/payledger/internal/store"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitBadInput  = 2
	ExitStoreFail = 3
)

// IsCancelled reports whether err comes from the user backing out of a
// prompt or interrupting the run.
func IsCancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, context.Canceled)
}

// ExitCode maps an error onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, IsCancelled(err):
		return ExitOK
	case errors.Is(err, feed.ErrMalformedEvent):
		return ExitBadInput
	case errors.Is(err, store.ErrRollback), errors.Is(err, store.ErrConstraintViolation):
		return ExitStoreFail
	default:
		return ExitError
	}
}

// HandleError prints err and exits with the matching status.
func HandleError(err error) {
	if IsCancelled(err) {
		pterm.Warning.WithWriter(os.Stderr).Println("Operation Cancelled")
		os.Exit(ExitOK)
	}

	pterm.Error.WithWriter(os.Stderr).Println(capitalize(err.Error()))
	os.Exit(ExitCode(err))
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
