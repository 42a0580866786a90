package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// defaultNames are tried in the working directory when no path is given
var defaultNames = []string{"tarragon.yaml", "tarragon.toml"}

// Load reads configuration from a file with ENV interpolation.
// If configPath is empty, it searches default locations and falls back to
// Defaults() when none exist.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	cfg, _, err := LoadWithPath(configPath, getenv)
	return cfg, err
}

// LoadWithPath reads configuration and returns both the config and the
// resolved path. The path is empty when no file was found.
func LoadWithPath(configPath string, getenv func(string) string) (*Config, string, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Defaults(), "", nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := decode(absPath, data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.BaseDir = filepath.Dir(absPath)
	cfg.Path = absPath

	if cfg.REPL.HistoryFile != "" {
		cfg.REPL.HistoryFile = resolvePath(cfg.BaseDir, cfg.REPL.HistoryFile)
	}
	if isFileOutput(cfg.Logging.Output) {
		cfg.Logging.Output = resolvePath(cfg.BaseDir, cfg.Logging.Output)
	}

	if err := Validate(cfg); err != nil {
		return nil, "", err
	}

	return cfg, absPath, nil
}

// decode picks a decoder by file extension; anything that is not .toml is YAML.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		return err
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// resolvePath expands a leading ~ and makes relative paths relative to baseDir.
func resolvePath(baseDir, path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Validate checks enumerated values and limits.
func Validate(cfg *Config) error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be json or text)", cfg.Logging.Format))
	}

	if cfg.Logging.Output == "" {
		errs = append(errs, "logging.output is required (stderr, stdout, or a file path)")
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[cfg.REPL.Color] {
		errs = append(errs, fmt.Sprintf("invalid repl.color: %s (must be auto, always, or never)", cfg.REPL.Color))
	}

	if cfg.REPL.HistorySize < 0 {
		errs = append(errs, fmt.Sprintf("repl.history_size must not be negative, got %d", cfg.REPL.HistorySize))
	}

	if cfg.Eval.MaxDepth < 1 {
		errs = append(errs, fmt.Sprintf("eval.max_depth must be at least 1, got %d", cfg.Eval.MaxDepth))
	}

	if cfg.Format.LineWidth < 20 {
		errs = append(errs, fmt.Sprintf("format.line_width must be at least 20, got %d", cfg.Format.LineWidth))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Warnings returns non-fatal configuration issues that should be reported to the user.
func Warnings(cfg *Config) []string {
	var warnings []string

	if cfg.REPL.Prompt == "" {
		warnings = append(warnings, "repl.prompt is empty - input lines will have no prompt")
	}
	if cfg.REPL.HistorySize == 0 {
		warnings = append(warnings, "repl.history_size is 0 - history will not be saved")
	}
	if cfg.Eval.MaxDepth > 100000 {
		warnings = append(warnings, fmt.Sprintf("eval.max_depth %d is very high - deep recursion may exhaust the Go stack before the limit is reached", cfg.Eval.MaxDepth))
	}
	if cfg.Format.LineWidth > 200 {
		warnings = append(warnings, fmt.Sprintf("format.line_width %d is unusually wide", cfg.Format.LineWidth))
	}

	return warnings
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > TARRAGON_CONFIG env > ./tarragon.yaml >
// ./tarragon.toml > ~/.config/tarragon/tarragon.yaml. An empty result means
// no file exists in any default location.
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("TARRAGON_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("TARRAGON_CONFIG file not found: %s", envPath)
		}
		return envPath, nil
	}

	for _, name := range defaultNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".config", "tarragon", "tarragon.yaml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}
