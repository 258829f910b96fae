// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner launches the external media converter and reports how the
// process ended. Launch failures are mapped to a platform-neutral Reason here
// so that callers never inspect OS error codes.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"github.com/pdiddy/fconvert/pkg/types"
)

// Reason is the platform-neutral cause of a launch failure.
type Reason int

const (
	ReasonOther Reason = iota
	ReasonNotFound
	ReasonPermissionDenied
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not found"
	case ReasonPermissionDenied:
		return "permission denied"
	default:
		return "other"
	}
}

// Sentinel errors matched by LaunchError through errors.Is.
var (
	ErrNotFound         = errors.New("converter executable not found")
	ErrPermissionDenied = errors.New("converter executable not permitted")
)

// LaunchError reports that the converter process could not be started at all.
type LaunchError struct {
	Bin    string
	Reason Reason
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("starting %s (%s): %v", e.Bin, e.Reason, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Is lets callers test for ErrNotFound and ErrPermissionDenied without
// looking at the reason field.
func (e *LaunchError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Reason == ReasonNotFound
	case ErrPermissionDenied:
		return e.Reason == ReasonPermissionDenied
	}
	return false
}

// Result is the exit state of a converter process that was started.
type Result struct {
	ExitCode int
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool { return r.ExitCode == 0 }

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	// Run starts name with args, copies its standard error into stderr and
	// waits for it to exit, returning the exit code. Standard output is
	// discarded. The error is non-nil only when the process did not start.
	Run(ctx context.Context, name string, args []string, stderr io.Writer) (int, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was killed by a signal.
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

var defaultExec = &osExecutor{}

// FFmpeg converts files by invoking an ffmpeg-compatible executable.
type FFmpeg struct {
	bin  string
	exec executor
}

// NewFFmpeg returns a converter that runs bin, which may be a bare name
// resolved through PATH or an explicit path. An empty bin selects ffmpeg.
func NewFFmpeg(bin string) *FFmpeg {
	return newFFmpeg(bin, defaultExec)
}

func newFFmpeg(bin string, exec executor) *FFmpeg {
	if bin == "" {
		bin = types.DefaultConverterBin
	}
	return &FFmpeg{bin: bin, exec: exec}
}

// Name returns the executable the converter runs.
func (f *FFmpeg) Name() string { return f.bin }

// LookPath resolves the executable through PATH. The returned error is a
// *LaunchError so it classifies the same way as a failed Convert.
func (f *FFmpeg) LookPath() (string, error) {
	p, err := f.exec.LookPath(f.bin)
	if err != nil {
		return "", launchError(f.bin, err)
	}
	return p, nil
}

// Convert runs `<bin> -hide_banner -i input output`. A process that starts
// and exits non-zero is reported through Result with a nil error; the error
// is non-nil only when the process could not be started, and is then always
// a *LaunchError.
func (f *FFmpeg) Convert(ctx context.Context, input, output string) (Result, error) {
	args := []string{"-hide_banner", "-i", input, output}

	var stderr bytes.Buffer
	code, err := f.exec.Run(ctx, f.bin, args, &stderr)
	if err != nil {
		return Result{}, launchError(f.bin, err)
	}
	return Result{ExitCode: code, Stderr: stderr.String()}, nil
}

// launchError is the single place where OS launch errors become a Reason.
func launchError(bin string, err error) *LaunchError {
	reason := ReasonOther
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		reason = ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		reason = ReasonPermissionDenied
	}
	return &LaunchError{Bin: bin, Reason: reason, Err: err}
}
