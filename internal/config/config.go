package config

import (
	"fmt"
	"slices"

	"github.com/glint-vision/chromafind/internal/detector"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var validOutputFormats = []string{"text", "json"}

// DefaultConfig returns the built-in defaults: the tuned detection profile
// plus conservative output/server settings.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		Detection: detector.DefaultConfig(),
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     32,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			OverlayEnabled:  false,
		},
	}
}

// Validate checks the application configuration, including the embedded
// detection parameters.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (must be one of %v)", c.LogLevel, validLogLevels)
	}
	if !slices.Contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output.format %q (must be one of %v)", c.Output.Format, validOutputFormats)
	}
	if c.Output.MaxPoints < 0 {
		return fmt.Errorf("output.max_points must be >= 0, got %d", c.Output.MaxPoints)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be >= 1, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec < 1 {
		return fmt.Errorf("server.timeout_sec must be >= 1, got %d", c.Server.TimeoutSec)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be >= 0, got %d", c.Server.ShutdownTimeout)
	}
	if err := detector.ValidateConfig(c.Detection); err != nil {
		return fmt.Errorf("detection config invalid: %w", err)
	}
	return nil
}
