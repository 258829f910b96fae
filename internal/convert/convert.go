// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives a batch of files through an external converter, one
// file at a time, and classifies how each run ended.
package convert

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/fconvert/internal/ctxlog"
	"github.com/pdiddy/fconvert/internal/runner"
	"github.com/pdiddy/fconvert/pkg/types"
)

// Converter runs the external tool for one input/output pair.
// runner.FFmpeg is the production implementation.
type Converter interface {
	// Convert returns the process result when it started, or an error
	// (a *runner.LaunchError) when it could not be started.
	Convert(ctx context.Context, input, output string) (runner.Result, error)
}

// Recorder receives every finished conversion, e.g. the sqlite journal.
type Recorder interface {
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted     int
	AlreadyExists int
	Unsuitable    int
	Unknown       int

	// Records lists finished conversions in input order.
	Records []types.ConversionRecord
}

// Failed returns the number of files the converter rejected.
func (r BatchResult) Failed() int {
	return r.AlreadyExists + r.Unsuitable + r.Unknown
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed()
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed() > 0
}

func (r *BatchResult) add(rec types.ConversionRecord) {
	switch rec.Outcome.Kind {
	case types.OutcomeConverted:
		r.Converted++
	case types.OutcomeAlreadyExists:
		r.AlreadyExists++
	case types.OutcomeUnsuitableFormat:
		r.Unsuitable++
	default:
		r.Unknown++
	}
	r.Records = append(r.Records, rec)
}

// ConvertFile converts a single input to format, printing its status line to
// w. The returned error is non-nil only when the converter could not be
// launched; a conversion the converter rejected is reported in the record.
func ConvertFile(ctx context.Context, c Converter, input, format string, w io.Writer) (types.ConversionRecord, error) {
	start := time.Now()
	rec := types.ConversionRecord{
		Input:     input,
		Output:    OutputName(input, format),
		Format:    format,
		StartedAt: start,
	}

	log := ctxlog.FromContext(ctx)
	log.Debug("converting", "input", input, "output", rec.Output)

	res, err := c.Convert(ctx, input, rec.Output)
	rec.Elapsed = time.Since(start)
	if err != nil {
		return rec, fmt.Errorf("converting %s: %w", input, err)
	}

	if res.Success() {
		rec.Outcome = types.Outcome{Kind: types.OutcomeConverted}
	} else {
		rec.Outcome = Classify(res.Stderr)
	}
	log.Debug("converter exited",
		"input", input, "exit_code", res.ExitCode, "outcome", rec.Outcome.Kind,
		"failed", rec.Outcome.Failed(), "elapsed", rec.Elapsed)

	printRecord(w, rec)
	return rec, nil
}

// ConvertBatch converts inputs in order, one at a time. It stops at the first
// file whose converter could not be launched and returns that error along
// with the files finished so far; otherwise it prints "Done!" after the last
// file. rec may be nil; its errors are logged and do not stop the batch.
func ConvertBatch(ctx context.Context, c Converter, format string, inputs []string, w io.Writer, rec Recorder) (BatchResult, error) {
	var result BatchResult
	log := ctxlog.FromContext(ctx)

	for _, input := range inputs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r, err := ConvertFile(ctx, c, input, format, w)
		if err != nil {
			return result, err
		}
		result.add(r)

		if rec != nil {
			if err := rec.Record(ctx, r); err != nil {
				log.Warn("recording conversion", "input", input, "err", err)
			}
		}
	}

	log.Info("batch finished",
		"converted", result.Converted, "failed", result.Failed(), "total", result.Total(),
		"has_failures", result.HasFailures())
	fmt.Fprintln(w, "Done!")
	return result, nil
}
