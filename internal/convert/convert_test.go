// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fconvert/internal/ctxlog"
	"github.com/pdiddy/fconvert/internal/runner"
	"github.com/pdiddy/fconvert/pkg/types"
)

type call struct{ input, output string }

// fakeConverter returns canned results per input path and records every call.
type fakeConverter struct {
	results map[string]runner.Result
	errs    map[string]error
	calls   []call
}

func (f *fakeConverter) Convert(_ context.Context, input, output string) (runner.Result, error) {
	f.calls = append(f.calls, call{input, output})
	if err, ok := f.errs[input]; ok {
		return runner.Result{}, err
	}
	return f.results[input], nil
}

// memRecorder collects records, optionally failing every call.
type memRecorder struct {
	recs []types.ConversionRecord
	err  error
}

func (m *memRecorder) Record(_ context.Context, rec types.ConversionRecord) error {
	m.recs = append(m.recs, rec)
	return m.err
}

func notFound(bin string) error {
	return &runner.LaunchError{Bin: bin, Reason: runner.ReasonNotFound, Err: exec.ErrNotFound}
}

var convertedLine = regexp.MustCompile(`^Formated a\.mp3 \(\d+ms\)$`)

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name      string
		result    runner.Result
		wantKind  types.OutcomeKind
		wantLines []string
	}{
		{
			name:     "already exists",
			result:   runner.Result{ExitCode: 1, Stderr: "File 'a.mp3' already exists. Exiting."},
			wantKind: types.OutcomeAlreadyExists,
			wantLines: []string{
				"Failed a.mp3 (already exists)",
			},
		},
		{
			name:     "unsuitable output format",
			result:   runner.Result{ExitCode: 1, Stderr: "Unable to find a suitable output format for 'a.zzz'"},
			wantKind: types.OutcomeUnsuitableFormat,
			wantLines: []string{
				"Failed a.mp3 (unable to find a suitable output format)",
			},
		},
		{
			name:     "unknown dumps stderr",
			result:   runner.Result{ExitCode: 1, Stderr: "a.mp4: Invalid data found\n"},
			wantKind: types.OutcomeUnknown,
			wantLines: []string{
				"Failed a.mp3 (unknown)",
				`"a.mp4: Invalid data found\n"`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeConverter{results: map[string]runner.Result{"a.mp4": tt.result}}
			var out bytes.Buffer

			rec, err := ConvertFile(context.Background(), c, "a.mp4", "mp3", &out)
			require.NoError(t, err)

			assert.Equal(t, tt.wantKind, rec.Outcome.Kind)
			assert.Equal(t, "a.mp3", rec.Output)
			assert.Equal(t, "mp3", rec.Format)
			assert.Equal(t, strings.Join(tt.wantLines, "\n")+"\n", out.String())
		})
	}
}

func TestConvertFile_Success(t *testing.T) {
	c := &fakeConverter{results: map[string]runner.Result{"a.mp4": {}}}
	var out bytes.Buffer

	rec, err := ConvertFile(context.Background(), c, "a.mp4", "mp3", &out)
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeConverted, rec.Outcome.Kind)
	assert.False(t, rec.StartedAt.IsZero())
	assert.Regexp(t, convertedLine, strings.TrimSuffix(out.String(), "\n"))
	assert.Equal(t, []call{{"a.mp4", "a.mp3"}}, c.calls)
}

func TestConvertFile_LaunchFailure(t *testing.T) {
	c := &fakeConverter{errs: map[string]error{"a.mp4": notFound("ffmpeg")}}
	var out bytes.Buffer

	_, err := ConvertFile(context.Background(), c, "a.mp4", "mp3", &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrNotFound)
	assert.Empty(t, out.String(), "nothing is printed for a file whose converter never ran")
}

func TestConvertFile_LogsAtDebug(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, "debug"))
	c := &fakeConverter{results: map[string]runner.Result{"a.mp4": {}}}

	_, err := ConvertFile(ctx, c, "a.mp4", "mp3", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "output=a.mp3")
	assert.Contains(t, logs.String(), "outcome=converted")
}

func TestConvertBatch(t *testing.T) {
	c := &fakeConverter{results: map[string]runner.Result{
		"a.mp4": {},
		"b.mov": {ExitCode: 1, Stderr: "already exists"},
		"c.avi": {ExitCode: 1, Stderr: "suitable output"},
		"d.mkv": {ExitCode: 1, Stderr: "boom"},
	}}
	rec := &memRecorder{}
	var out bytes.Buffer

	result, err := ConvertBatch(context.Background(), c, "mp3",
		[]string{"a.mp4", "b.mov", "c.avi", "d.mkv"}, &out, rec)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.AlreadyExists)
	assert.Equal(t, 1, result.Unsuitable)
	assert.Equal(t, 1, result.Unknown)
	assert.Equal(t, 3, result.Failed())
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Records, 4)
	assert.Len(t, rec.recs, 4)

	assert.Equal(t, []call{
		{"a.mp4", "a.mp3"},
		{"b.mov", "b.mp3"},
		{"c.avi", "c.mp3"},
		{"d.mkv", "d.mp3"},
	}, c.calls)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Regexp(t, convertedLine, lines[0])
	assert.Equal(t, "Failed b.mp3 (already exists)", lines[1])
	assert.Equal(t, "Failed c.mp3 (unable to find a suitable output format)", lines[2])
	assert.Equal(t, "Failed d.mp3 (unknown)", lines[3])
	assert.Equal(t, `"boom"`, lines[4])
	assert.Equal(t, "Done!", lines[5])
}

func TestConvertBatch_InOrderTwoFiles(t *testing.T) {
	c := &fakeConverter{results: map[string]runner.Result{"a.mp4": {}, "b.mov": {}}}
	var out bytes.Buffer

	result, err := ConvertBatch(context.Background(), c, "mp3", []string{"a.mp4", "b.mov"}, &out, nil)
	require.NoError(t, err)

	assert.Equal(t, []call{{"a.mp4", "a.mp3"}, {"b.mov", "b.mp3"}}, c.calls)
	assert.Equal(t, 2, result.Converted)
	assert.False(t, result.HasFailures())
	assert.True(t, strings.HasSuffix(out.String(), "Done!\n"))
}

func TestConvertBatch_AbortsOnLaunchFailure(t *testing.T) {
	c := &fakeConverter{
		results: map[string]runner.Result{"a.mp4": {}, "c.mp4": {}},
		errs:    map[string]error{"b.mp4": notFound("ffmpeg")},
	}
	var out bytes.Buffer

	result, err := ConvertBatch(context.Background(), c, "mp3", []string{"a.mp4", "b.mp4", "c.mp4"}, &out, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrNotFound)

	assert.Equal(t, 1, result.Converted)
	assert.Len(t, c.calls, 2, "files after the launch failure are not attempted")
	assert.NotContains(t, out.String(), "Done!")
}

func TestConvertBatch_RecorderErrorsAreNotFatal(t *testing.T) {
	c := &fakeConverter{results: map[string]runner.Result{"a.mp4": {}, "b.mp4": {}}}
	rec := &memRecorder{err: errors.New("database is locked")}
	var logs, out bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, "warn"))

	result, err := ConvertBatch(ctx, c, "mp3", []string{"a.mp4", "b.mp4"}, &out, rec)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Converted)
	assert.Len(t, rec.recs, 2)
	assert.Contains(t, logs.String(), "database is locked")
	assert.Contains(t, out.String(), "Done!")
}

func TestConvertBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &fakeConverter{}

	_, err := ConvertBatch(ctx, c, "mp3", []string{"a.mp4"}, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.calls)
}

func TestConvertBatch_Empty(t *testing.T) {
	var out bytes.Buffer

	result, err := ConvertBatch(context.Background(), &fakeConverter{}, "mp3", nil, &out, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Total())
	assert.Equal(t, "Done!\n", out.String())
}

func TestConvertBatch_LogsFailureFlags(t *testing.T) {
	c := &fakeConverter{results: map[string]runner.Result{
		"a.mp4": {},
		"b.mp4": {ExitCode: 1, Stderr: "already exists"},
	}}
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, "debug"))

	_, err := ConvertBatch(ctx, c, "mp3", []string{"a.mp4", "b.mp4"}, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "input=a.mp4 exit_code=0 outcome=converted failed=false")
	assert.Contains(t, logs.String(), "input=b.mp4 exit_code=1 outcome=already_exists failed=true")
	assert.Contains(t, logs.String(), "has_failures=true")
}
