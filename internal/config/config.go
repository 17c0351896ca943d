// Package config loads studio settings from a YAML file with
// environment overrides
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the studio settings
type Config struct {
	Addr      string `yaml:"addr"`
	StorePath string `yaml:"store_path"`
	Theme     string `yaml:"theme"`
	Currency  string `yaml:"currency"`
	DateStyle string `yaml:"date_style"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Addr:      "0.0.0.0:12212",
		StorePath: defaultStorePath(),
		Theme:     "light",
		Currency:  "USD",
		LogLevel:  "info",
	}
}

// Load reads the config file at path, layered over the defaults. A
// missing file is not an error; the defaults apply. Environment
// variables override both.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STUDIO_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STUDIO_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("STUDIO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("STUDIO_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("STUDIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c Config) validate() error {
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("unknown theme: %s", c.Theme)
	}
	return nil
}

// DefaultPath returns the conventional config file location, an empty
// string when no home directory is available.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "template-studio", "studio.yaml")
	}
	return ""
}

// defaultStorePath places the template store next to the executable
// when writable, falling back to the working directory.
func defaultStorePath() string {
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		testFile := filepath.Join(exeDir, ".template-studio-write-test")
		if f, err := os.Create(testFile); err == nil {
			f.Close()
			os.Remove(testFile)
			return filepath.Join(exeDir, "templates.json")
		}
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "templates.json")
	}
	return "templates.json"
}
