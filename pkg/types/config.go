package types

// DefaultConverterBin is the converter executable looked up on PATH when no
// override is configured.
const DefaultConverterBin = "ffmpeg"

// Config holds the runtime settings of the fconvert CLI. Values come from
// FCONVERT_* environment variables; there is no configuration file.
type Config struct {
	// ConverterBin is the converter executable name or path (default "ffmpeg").
	ConverterBin string `json:"converter_bin" yaml:"converter_bin" mapstructure:"ffmpeg"`

	// JournalPath is an sqlite database receiving one row per processed file.
	// Empty disables the journal.
	JournalPath string `json:"journal_path,omitempty" yaml:"journal_path,omitempty" mapstructure:"journal"`

	// ReportPath is a YAML file receiving the batch summary. Empty disables it.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty" mapstructure:"report"`

	// LogLevel is the slog level for diagnostics on stderr: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
