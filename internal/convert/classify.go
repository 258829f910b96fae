// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/fconvert/pkg/types"
)

// Phrases the converter writes to stderr for the failures we recognize.
const (
	phraseAlreadyExists = "already exists"
	phraseSuitable      = "suitable output"
)

// Classify maps the stderr of a converter run that exited non-zero to an
// Outcome. It never returns OutcomeConverted.
func Classify(stderr string) types.Outcome {
	switch {
	case strings.Contains(stderr, phraseAlreadyExists):
		return types.Outcome{Kind: types.OutcomeAlreadyExists}
	case strings.Contains(stderr, phraseSuitable):
		return types.Outcome{Kind: types.OutcomeUnsuitableFormat}
	default:
		return types.Outcome{Kind: types.OutcomeUnknown, Detail: stderr}
	}
}

// printRecord writes the status line(s) for a finished conversion.
func printRecord(w io.Writer, rec types.ConversionRecord) {
	switch rec.Outcome.Kind {
	case types.OutcomeConverted:
		fmt.Fprintf(w, "Formated %s (%dms)\n", rec.Output, rec.Elapsed.Milliseconds())
	case types.OutcomeAlreadyExists:
		fmt.Fprintf(w, "Failed %s (already exists)\n", rec.Output)
	case types.OutcomeUnsuitableFormat:
		fmt.Fprintf(w, "Failed %s (unable to find a suitable output format)\n", rec.Output)
	default:
		fmt.Fprintf(w, "Failed %s (unknown)\n", rec.Output)
		fmt.Fprintf(w, "%q\n", rec.Outcome.Detail)
	}
}
