// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fconvert CLI, a batch front end
// for ffmpeg: fconvert FORMAT FILES... converts each file to FORMAT.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fconvert/pkg/types"
)

const (
	usageText = `Usage: fconvert [FORMAT] FILES...
Try 'fconvert --help' for more information.`

	helpText = `Usage: fconvert [FORMAT] FILES...
Convert batch of files into target format
Example: fconvert mp3 video1.mp4 video2.mov`
)

// rootCmd is the only command. Flag parsing is disabled so that file names
// beginning with "-" reach the converter untouched; --help and -h are
// detected by hand anywhere in the argument list.
var rootCmd = &cobra.Command{
	Use:   "fconvert [FORMAT] FILES...",
	Short: "Convert batch of files into target format",
	Long: `fconvert converts every FILE into FORMAT by running ffmpeg once per file,
in the order given. Each output keeps the input's base name and takes FORMAT
as its extension, e.g. video1.mp4 becomes video1.mp3.

Environment:
  FCONVERT_FFMPEG     converter executable (default "ffmpeg")
  FCONVERT_JOURNAL    sqlite file that records every conversion
  FCONVERT_REPORT     YAML file that receives a batch summary
  FCONVERT_LOG_LEVEL  diagnostics on stderr: debug, info, warn, error`,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE:               runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig binds FCONVERT_* environment variables. There is no config file.
func initConfig() {
	viper.SetEnvPrefix("FCONVERT")
	viper.AutomaticEnv()

	viper.SetDefault("ffmpeg", types.DefaultConverterBin)
	viper.SetDefault("journal", "")
	viper.SetDefault("report", "")
	viper.SetDefault("log_level", "warn")
}

func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if cfg.ConverterBin == "" {
		cfg.ConverterBin = types.DefaultConverterBin
	}
	return cfg, nil
}

// execute runs the CLI with args (program name excluded) and returns the
// process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		reportError(stdout, err)
	}
	return exitCodeFor(err)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
