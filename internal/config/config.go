// Package config manages environment variables.
//
// It reads variables from the process environment (and an optional
// `.env` file), loads them into structured Go types on top of a set of
// documented defaults, and validates them so a bad value stops the
// service before it serves a single request.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the app fails fast on malformed config.
//   - Derive computed settings (effective log level, bind address).
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// before Load reads anything.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	`koanf` reads config sources and unmarshals them into the Config struct.

	Two sources are layered, the later one wins:
	- defaults: a flat map keyed by koanf paths ("server.port")
	- environment: only the names listed in envKeys are read, each one is
	  mapped onto its koanf path, everything else in the env is ignored

	e.g. PORT=9000 -> server.port -> Config.Server.Port
*/

// envKeys maps the supported environment variable names onto koanf paths.
var envKeys = map[string]string{
	"PROJECT_NAME":     "app.project_name",
	"VERSION":          "app.version",
	"API_V1_STR":       "app.api_prefix",
	"DEBUG":            "app.debug",
	"HOST":             "server.host",
	"PORT":             "server.port",
	"CORS_ORIGIN":      "server.cors_origin",
	"READ_TIMEOUT":     "server.read_timeout",
	"WRITE_TIMEOUT":    "server.write_timeout",
	"IDLE_TIMEOUT":     "server.idle_timeout",
	"SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"LOG_DIR":          "logging.dir",
}

// defaults holds the value of every setting when its env var is unset.
func defaults() map[string]any {
	return map[string]any{
		"app.project_name":        "CreditRisk",
		"app.version":             "1.0.0",
		"app.api_prefix":          "/api",
		"app.debug":               true,
		"server.host":             "0.0.0.0",
		"server.port":             8000,
		"server.cors_origin":      "http://localhost:4200",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "10s",
		"logging.dir":             "logs",
	}
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// A Config is built once by Load and treated as read-only afterwards.
type Config struct {
	App     AppConfig     `koanf:"app" validate:"required"`
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Logging LoggingConfig `koanf:"logging" validate:"required"`
}

// AppConfig holds top-level information about the service itself.
// ProjectName and Version are echoed by the root endpoint.
type AppConfig struct {
	ProjectName string `koanf:"project_name" validate:"required"`
	Version     string `koanf:"version" validate:"required"`
	APIPrefix   string `koanf:"api_prefix" validate:"required,startswith=/"`
	Debug       bool   `koanf:"debug"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	CORSOrigin      string        `koanf:"cors_origin" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
}

// Address returns the host:port pair the HTTP server binds to.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load builds the configuration from defaults and the environment,
// unmarshals it into Config and validates it.
//
// Every setting has a default, so Load only fails when a value is present
// but malformed (e.g. DEBUG=maybe, PORT=eighty). The caller is expected to
// treat that as fatal.
func Load() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// Returning "" from the mapping func makes koanf skip the variable,
	// so unrelated env vars (PATH, HOME, ...) never reach the config.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}

	// koanf decodes weakly: "8000" becomes an int, "false" a bool and "30s"
	// a time.Duration. Anything that cannot be converted is an error here.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return mainConfig, nil
}
