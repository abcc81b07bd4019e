package config

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Dir is where info.log and error.log (and their rotations) are written.
	// It is created on startup if missing.
	Dir string `koanf:"dir" validate:"required"`
}

// LogLevel returns the effective minimum log level.
//
// It is derived from the debug flag and cannot be configured on its own:
//   - debug enabled: "DEBUG"
//   - otherwise:     "INFO"
func (c *Config) LogLevel() string {
	if c.App.Debug {
		return "DEBUG"
	}
	return "INFO"
}
