// Package config loads floatodo settings from defaults, TOML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/floatodo/internal/logging"
	"github.com/idilsaglam/floatodo/internal/store/jsonstore"
)

// DefaultPlaceholder is the hint shown in the empty input field.
const DefaultPlaceholder = "Type a todo, press Enter to add"

// ProjectFileName is looked up in the working directory.
const ProjectFileName = "floatodo.toml"

// Config holds every tunable of the widget and the CLI.
type Config struct {
	File        string `toml:"file"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	Placeholder string `toml:"placeholder"`
	NoColor     bool   `toml:"no_color"`
	Mouse       bool   `toml:"mouse"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		File:        jsonstore.DefaultFileName,
		LogFile:     logging.DefaultFilePath(),
		LogLevel:    "info",
		LogFormat:   "text",
		Placeholder: DefaultPlaceholder,
		Mouse:       true,
	}
}

// Load applies, in order: defaults, the user config file, the project config
// file (or explicit, when non-empty, instead of both files), then environment
// variables. Flags are applied afterwards by the caller.
func Load(explicit string) (Config, error) {
	cfg := Default()

	if explicit != "" {
		if err := loadFile(&cfg, explicit); err != nil {
			return cfg, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		for _, p := range []string{userConfigFile(), ProjectFileName} {
			if p == "" {
				continue
			}
			err := loadFile(&cfg, p)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return cfg, fmt.Errorf("loading config file %s: %w", p, err)
			}
		}
	}

	loadFromEnv(&cfg)
	cfg.finalize()
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "floatodo", "config.toml")
}

func loadFromEnv(cfg *Config) {
	if v, ok := os.LookupEnv("FLOATODO_FILE"); ok && v != "" {
		cfg.File = v
	}
	if v, ok := os.LookupEnv("FLOATODO_LOG_FILE"); ok && v != "" {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv("FLOATODO_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("FLOATODO_NO_COLOR"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoColor = b
		}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}
}

func (c *Config) finalize() {
	c.File = expandPath(c.File)
	c.LogFile = expandPath(c.LogFile)
	if strings.TrimSpace(c.Placeholder) == "" {
		c.Placeholder = DefaultPlaceholder
	}
}

// LoggingOptions turns the log settings into logging.Options.
func (c Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(c.LogLevel)
	opts.Formatter = logging.ParseFormatter(c.LogFormat)
	return opts
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
