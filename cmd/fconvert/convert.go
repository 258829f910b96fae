// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fconvert/internal/convert"
	"github.com/pdiddy/fconvert/internal/ctxlog"
	"github.com/pdiddy/fconvert/internal/journal"
	"github.com/pdiddy/fconvert/internal/runner"
)

// newConverter builds the converter for the configured binary. Tests
// replace it with a fake.
var newConverter = func(bin string) convert.Converter {
	return runner.NewFFmpeg(bin)
}

// wantsHelp reports whether --help or -h appears anywhere in args.
func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

func runConvert(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if wantsHelp(args) {
		fmt.Fprintln(out, helpText)
		return nil
	}
	if len(args) < 2 {
		fmt.Fprintln(out, usageText)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	logger := ctxlog.New(cmd.ErrOrStderr(), cfg.LogLevel)
	ctx := ctxlog.WithLogger(cmd.Context(), logger)
	logger.Debug("fconvert starting", "version", version, "converter", cfg.ConverterBin)

	conv := newConverter(cfg.ConverterBin)
	if lp, ok := conv.(interface{ LookPath() (string, error) }); ok {
		if p, err := lp.LookPath(); err == nil {
			logger.Debug("converter resolved", "path", p)
		}
	}

	var rec convert.Recorder
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			logger.Warn("journal disabled", "path", cfg.JournalPath, "err", err)
		} else {
			defer j.Close()
			rec = j
		}
	}

	format, inputs := args[0], args[1:]
	result, err := convert.ConvertBatch(ctx, conv, format, inputs, out, rec)

	if cfg.ReportPath != "" {
		if werr := convert.WriteReport(cfg.ReportPath, format, result); werr != nil {
			logger.Warn("report not written", "err", werr)
		}
	}
	return err
}
