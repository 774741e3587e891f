package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. Keys absent from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironment()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	kinds := []struct {
		name     string
		patterns []string
	}{
		{"task_stderr", cfg.Logs.TaskStderr},
		{"task_syslog", cfg.Logs.TaskSyslog},
		{"step_syslog", cfg.Logs.StepSyslog},
	}

	for _, kind := range kinds {
		if len(kind.patterns) == 0 {
			return fmt.Errorf("logs.%s: at least one glob pattern is required", kind.name)
		}
		for _, p := range kind.patterns {
			if p == "" {
				return fmt.Errorf("logs.%s: empty glob pattern", kind.name)
			}
			if _, err := filepath.Match(p, ""); err != nil {
				return fmt.Errorf("logs.%s: invalid glob pattern %q: %w", kind.name, p, err)
			}
		}
	}

	if cfg.BaseDir != "" {
		info, err := os.Stat(cfg.BaseDir)
		if err != nil {
			return fmt.Errorf("base_dir: %w", err)
		}
		if !info.IsDir() {
			return errors.New("base_dir: not a directory")
		}
	}

	return nil
}

// ApplyEnvironment applies environment variable overrides to the config.
// Load calls it; callers skipping Load (no config file) call it themselves.
func (c *Config) ApplyEnvironment() {
	if dir := os.Getenv(EnvBaseDir); dir != "" {
		c.BaseDir = dir
	}
}
