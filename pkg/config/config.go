package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the complete asa configuration
type Config struct {
	Interpreter InterpreterConfig `toml:"interpreter"`
	Log         LogConfig         `toml:"log"`
	Output      OutputConfig      `toml:"output"`
	REPL        REPLConfig        `toml:"repl"`
}

// InterpreterConfig bounds script execution
type InterpreterConfig struct {
	MaxCallDepth int `toml:"max_call_depth"`
	MaxSteps     int `toml:"max_steps"` // 0 means unlimited
}

type LogConfig struct {
	Level string `toml:"level"`
}

type OutputConfig struct {
	Color bool `toml:"color"`
}

type REPLConfig struct {
	HistoryFile string `toml:"history_file"`
	Prompt      string `toml:"prompt"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Output: OutputConfig{Color: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by ASA_CONFIG, or the first of the default
// locations that exists. Without any file it returns Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("ASA_CONFIG"); path != "" {
		return Load(path)
	}

	defaultPaths := []string{"./asa.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "asa", "config.toml"))
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Interpreter.MaxCallDepth == 0 {
		c.Interpreter.MaxCallDepth = 512
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = "~/.asa_history"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "asa> "
	}
}

func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Interpreter.MaxCallDepth < 0 {
		return fmt.Errorf("interpreter.max_call_depth must be positive, got %d", c.Interpreter.MaxCallDepth)
	}
	if c.Interpreter.MaxSteps < 0 {
		return fmt.Errorf("interpreter.max_steps must not be negative, got %d", c.Interpreter.MaxSteps)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
}

// HistoryPath resolves a leading "~/" in the REPL history file.
func (c *Config) HistoryPath() string {
	p := c.REPL.HistoryFile
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}
