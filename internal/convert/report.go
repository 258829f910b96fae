// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fconvert/pkg/types"
)

// Report is the on-disk YAML summary of a batch run.
type Report struct {
	Format      string        `yaml:"format"`
	GeneratedAt time.Time     `yaml:"generated_at"`
	Summary     ReportSummary `yaml:"summary"`
	Files       []ReportEntry `yaml:"files"`
}

// ReportSummary stores per-outcome counts.
type ReportSummary struct {
	Total         int `yaml:"total"`
	Converted     int `yaml:"converted"`
	AlreadyExists int `yaml:"already_exists"`
	Unsuitable    int `yaml:"unsuitable_format"`
	Unknown       int `yaml:"unknown"`
}

// ReportEntry describes one processed file.
type ReportEntry struct {
	Input     string            `yaml:"input"`
	Output    string            `yaml:"output"`
	Outcome   types.OutcomeKind `yaml:"outcome"`
	Detail    string            `yaml:"detail,omitempty"`
	ElapsedMS int64             `yaml:"elapsed_ms"`
}

// NewReport builds a Report from a batch result.
func NewReport(format string, result BatchResult) Report {
	r := Report{
		Format:      format,
		GeneratedAt: time.Now().UTC(),
		Summary: ReportSummary{
			Total:         result.Total(),
			Converted:     result.Converted,
			AlreadyExists: result.AlreadyExists,
			Unsuitable:    result.Unsuitable,
			Unknown:       result.Unknown,
		},
		Files: make([]ReportEntry, 0, len(result.Records)),
	}
	for _, rec := range result.Records {
		r.Files = append(r.Files, ReportEntry{
			Input:     rec.Input,
			Output:    rec.Output,
			Outcome:   rec.Outcome.Kind,
			Detail:    rec.Outcome.Detail,
			ElapsedMS: rec.Elapsed.Milliseconds(),
		})
	}
	return r
}

// WriteReport saves the batch summary to path as YAML.
func WriteReport(path, format string, result BatchResult) error {
	data, err := yaml.Marshal(NewReport(format, result))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
