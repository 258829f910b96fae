package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gookit/color"

	"github.com/pdiddy/fconvert/internal/runner"
)

// Exit codes for the fconvert CLI. Help, usage and per-file conversion
// failures all exit with ExitSuccess.
const (
	ExitSuccess = 0 // Batch finished, or help/usage shown
	ExitGeneral = 1 // Converter could not be launched, or another fatal error
)

// exitCodeFor returns the exit code for an error returned by the root command.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneral
}

// reportError prints a fatal error with a red ERROR label.
func reportError(w io.Writer, err error) {
	label := color.Red.Sprint("ERROR")

	var le *runner.LaunchError
	if !errors.As(err, &le) {
		fmt.Fprintf(w, "%s: %v\n", label, err)
		return
	}

	switch {
	case errors.Is(err, runner.ErrNotFound):
		fmt.Fprintf(w, "%s: %s not found!\nTry adding %s to PATH\n", label, le.Bin, le.Bin)
	case errors.Is(err, runner.ErrPermissionDenied):
		fmt.Fprintf(w, "%s: %s is not executable!\nCheck the permissions of %s\n", label, le.Bin, le.Bin)
	default:
		fmt.Fprintf(w, "%s: could not start %s: %v\n", label, le.Bin, le.Err)
	}
}
