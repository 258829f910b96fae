// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the fconvert batch converter.
package types

import "time"

// OutcomeKind classifies how a single file conversion ended.
type OutcomeKind string

const (
	OutcomeConverted        OutcomeKind = "converted"
	OutcomeAlreadyExists    OutcomeKind = "already_exists"
	OutcomeUnsuitableFormat OutcomeKind = "unsuitable_format"
	OutcomeUnknown          OutcomeKind = "unknown"
)

// Outcome is the classified result of one converter run. Detail carries the
// raw converter error text for OutcomeUnknown and is empty otherwise.
type Outcome struct {
	Kind   OutcomeKind `json:"kind" yaml:"kind"`
	Detail string      `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Failed reports whether the outcome is anything other than a conversion.
func (o Outcome) Failed() bool {
	return o.Kind != OutcomeConverted
}

// ConversionRecord describes one processed input file.
type ConversionRecord struct {
	// Input is the path exactly as given on the command line.
	Input string `json:"input" yaml:"input"`

	// Output is the derived output path (base name + "." + format).
	Output string `json:"output" yaml:"output"`

	// Format is the target format token, used verbatim as the extension.
	Format string `json:"format" yaml:"format"`

	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// StartedAt is the wall-clock time the file was picked up.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Elapsed is the time spent between pickup and converter exit.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}
