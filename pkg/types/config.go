// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultStageInterval is the pause before each progress checkpoint.
const DefaultStageInterval = 500 * time.Millisecond

// Config holds the settings for a converter session and its CLI surface.
type Config struct {
	// Mode is the mode a new session starts in (default "pro").
	Mode Mode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// StageInterval is the pause before each checkpoint (default 500ms).
	StageInterval time.Duration `json:"stage_interval" yaml:"stage_interval" mapstructure:"stage_interval"`

	// OutputDir is where downloaded artifacts are written (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// LogLevel is one of debug, info, warn, error (default "warn").
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.StageInterval <= 0 {
		c.StageInterval = DefaultStageInterval
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return c
}
