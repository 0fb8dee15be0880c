package config

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultProjectFolder is the project tree scanned when no folder is given.
	DefaultProjectFolder = "./tinybird"
	// DefaultReportFile is the markdown report written after a check run.
	DefaultReportFile = "migration.md"
)

// ValidateConfig checks the loaded configuration and fills in defaults.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateMigrateConfig(&cfg.Migrate); err != nil {
		return fmt.Errorf("YAML global config: migrate directive is invalid: %w", err)
	}
	if err := validateSummarizerConfig(&cfg.Summarizer); err != nil {
		return fmt.Errorf("YAML global config: summarizer directive is invalid: %w", err)
	}
	if err := validateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	return nil
}

func validateMigrateConfig(cfg *Migrate) error {
	cfg.ProjectFolder = SetThen(cfg.ProjectFolder, DefaultProjectFolder)
	cfg.ReportFile = SetThen(cfg.ReportFile, DefaultReportFile)
	return nil
}

func validateSummarizerConfig(cfg *Summarizer) error {
	if cfg.Enabled != nil && *cfg.Enabled && cfg.URL == "" {
		return fmt.Errorf("summarizer is enabled but no url is set")
	}
	if cfg.URL != "" {
		if _, err := url.ParseRequestURI(cfg.URL); err != nil {
			return fmt.Errorf("summarizer url %q is not valid: %w", cfg.URL, err)
		}
	}
	return nil
}

func validateLoggerConfig(cfg *Logger) error {
	if cfg.Level == "" {
		return nil
	}
	switch strings.ToUpper(cfg.Level) {
	case "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	}
	return fmt.Errorf("unknown log level %q", cfg.Level)
}

// SummarizerEnabled reports whether the narrative summarizer should be called.
// The summarizer is opt-in: it needs a URL and must not be explicitly disabled.
func (c *Config) SummarizerEnabled() bool {
	if c.Summarizer.URL == "" {
		return false
	}
	if c.Summarizer.Enabled != nil {
		return *c.Summarizer.Enabled
	}
	return true
}
