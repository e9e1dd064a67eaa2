package config

import (
	"github.com/pkg/errors"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/handler/filehandler"
	"github.com/Philipp01105/logz/logger"
	"github.com/Philipp01105/logz/router"
)

// Config holds the settings of a logz host program
type Config struct {
	Name     string         `mapstructure:"name"`
	Level    string         `mapstructure:"level"`
	Format   string         `mapstructure:"format"`
	LogDir   string         `mapstructure:"log_dir"`
	LogFile  string         `mapstructure:"log_file"`
	Rotation RotationConfig `mapstructure:"rotation"`
	Test     TestConfig     `mapstructure:"test"`
}

// RotationConfig holds size-based rotation settings
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// TestConfig selects the failure paths the demo program exercises
type TestConfig struct {
	ExceptionSpecified   bool `mapstructure:"exception_specified"`
	ExceptionUnspecified bool `mapstructure:"exception_unspecified"`
}

// Validate checks that the settings are consistent
func (c *Config) Validate() error {
	if c.LogDir != "" && c.LogFile != "" {
		return errors.New("log_dir and log_file are mutually exclusive")
	}
	if _, err := logger.ParseLevel(c.Level); err != nil {
		return err
	}
	switch router.Format(c.Format) {
	case router.FormatText, router.FormatJSON:
	default:
		return errors.Errorf("unknown log format %q", c.Format)
	}
	if c.Rotation.MaxSizeMB < 0 || c.Rotation.MaxBackups < 0 || c.Rotation.MaxAgeDays < 0 {
		return errors.New("rotation limits must not be negative")
	}
	return nil
}

// LevelValue returns the parsed minimum level
func (c *Config) LevelValue() core.Level {
	level, _ := logger.ParseLevel(c.Level)
	return level
}

// Target returns where the router should send records
func (c *Config) Target() router.Target {
	return router.Target{Dir: c.LogDir, File: c.LogFile}
}

// RouterOptions maps the settings to router options
func (c *Config) RouterOptions() []router.Option {
	return []router.Option{
		router.WithName(c.Name),
		router.WithLevel(c.LevelValue()),
		router.WithFormat(router.Format(c.Format)),
		router.WithRotation(filehandler.Rotation{
			MaxSizeMB:  c.Rotation.MaxSizeMB,
			MaxBackups: c.Rotation.MaxBackups,
			MaxAgeDays: c.Rotation.MaxAgeDays,
			Compress:   c.Rotation.Compress,
		}),
	}
}
