package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"calc/interpreter-go/pkg/interpreter"
)

// ConfigFileNames are the names DiscoverConfig looks for, in order.
var ConfigFileNames = []string{"calc.yml", "calc.yaml", "calc.toml"}

// Format identifies a configuration file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Config holds front-end settings.
type Config struct {
	// Path is the file the configuration was read from; empty for defaults.
	Path               string
	Prompt             string
	ContinuationPrompt string
	Echo               bool
	Color              bool
	Banner             bool
	HistoryFile        string
	MaxCallDepth       int
}

// configFile mirrors the on-disk keys. Pointers distinguish unset keys from
// zero values.
type configFile struct {
	Prompt             *string `yaml:"prompt" toml:"prompt"`
	ContinuationPrompt *string `yaml:"continuation_prompt" toml:"continuation_prompt"`
	Echo               *bool   `yaml:"echo" toml:"echo"`
	Color              *bool   `yaml:"color" toml:"color"`
	Banner             *bool   `yaml:"banner" toml:"banner"`
	HistoryFile        *string `yaml:"history_file" toml:"history_file"`
	MaxCallDepth       *int    `yaml:"max_call_depth" toml:"max_call_depth"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Prompt:             "calc > ",
		ContinuationPrompt: "...... > ",
		Echo:               true,
		Color:              true,
		Banner:             true,
		HistoryFile:        "~/.calc_history",
		MaxCallDepth:       interpreter.DefaultMaxCallDepth,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DetectFormat picks the syntax from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("config: unsupported file extension %q (want .yml, .yaml, or .toml)", filepath.Ext(path))
	}
}

// LoadConfig reads and validates a configuration file. Keys the file does
// not set keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", absPath, err)
	}

	var raw configFile
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			return nil, &ValidationError{Path: absPath, Issues: []string{"unknown keys: " + strings.Join(keys, ", ")}}
		}
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DiscoverConfig loads the first of ConfigFileNames found in dir, or returns
// the defaults when none exists.
func DiscoverConfig(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return LoadConfig(candidate)
	}
	return DefaultConfig(), nil
}

func (raw configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	if raw.ContinuationPrompt != nil {
		cfg.ContinuationPrompt = *raw.ContinuationPrompt
	}
	if raw.Echo != nil {
		cfg.Echo = *raw.Echo
	}
	if raw.Color != nil {
		cfg.Color = *raw.Color
	}
	if raw.Banner != nil {
		cfg.Banner = *raw.Banner
	}
	if raw.HistoryFile != nil {
		cfg.HistoryFile = *raw.HistoryFile
	}
	if raw.MaxCallDepth != nil {
		cfg.MaxCallDepth = *raw.MaxCallDepth
	}
	return cfg
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	errs := ValidationError{Path: c.Path}
	if strings.ContainsAny(c.Prompt, "\r\n") {
		errs.Issues = append(errs.Issues, "prompt must be a single line")
	}
	if strings.ContainsAny(c.ContinuationPrompt, "\r\n") {
		errs.Issues = append(errs.Issues, "continuation_prompt must be a single line")
	}
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive, got %d", c.MaxCallDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ApplyEnv applies CALC_NO_COLOR and CALC_HISTORY overrides.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("CALC_NO_COLOR")); v != "" && v != "0" {
		c.Color = false
	}
	if v := getenv("CALC_HISTORY"); v != "" {
		c.HistoryFile = v
	}
}

// HistoryPath expands a leading "~/" in HistoryFile. An empty result means
// history is not persisted.
func (c *Config) HistoryPath() string {
	path := c.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
