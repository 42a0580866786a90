package config

// Config represents the complete Tarragon configuration
type Config struct {
	BaseDir string        `yaml:"-" toml:"-"` // Directory containing config file, for resolving relative paths
	Path    string        `yaml:"-" toml:"-"` // File the config was loaded from, empty when defaults were used
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	REPL    REPLConfig    `yaml:"repl" toml:"repl"`
	Eval    EvalConfig    `yaml:"eval" toml:"eval"`
	Format  FormatConfig  `yaml:"format" toml:"format"`
}

// LoggingConfig holds diagnostic logging settings
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text or json
	Output string `yaml:"output" toml:"output"` // stderr, stdout, or a file path
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt             string `yaml:"prompt" toml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt" toml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file" toml:"history_file"` // Empty means ~/.tarragon_history
	HistorySize        int    `yaml:"history_size" toml:"history_size"` // 0 disables history
	Color              string `yaml:"color" toml:"color"`               // auto, always, never
}

// EvalConfig holds evaluator settings
type EvalConfig struct {
	MaxDepth   int  `yaml:"max_depth" toml:"max_depth"`
	ShowResult bool `yaml:"show_result" toml:"show_result"`
}

// FormatConfig holds formatter settings
type FormatConfig struct {
	LineWidth int `yaml:"line_width" toml:"line_width"`
}

// Defaults returns a Config with sensible default values
func Defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		REPL: REPLConfig{
			Prompt:             ">> ",
			ContinuationPrompt: ".. ",
			HistorySize:        1000,
			Color:              "auto",
		},
		Eval: EvalConfig{
			MaxDepth:   2000,
			ShowResult: true,
		},
		Format: FormatConfig{
			LineWidth: 92,
		},
	}
}
