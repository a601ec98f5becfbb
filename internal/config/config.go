// Package config reads the settings of the trackspring binaries from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// API
	APIURL      string
	HTTPTimeout time.Duration

	// Client state
	StateDB string

	// Logging
	LogFormat string
	LogLevel  string

	// Mock API
	MockAddr string
	MockDB   string
	GinMode  string
}

// Load reads the configuration. Variables from the files, ".env" if none
// are given, are added to the environment unless already set. Missing
// files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load %s: %w", file, err)
		}
	}

	cfg := &Config{
		APIURL:      getEnv("API_URL", "http://localhost:8080/api"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 0),
		StateDB:     getEnv("STATE_DB", defaultStateDB()),
		LogFormat:   getEnv("LOG_FORMAT", ""),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		MockAddr:    getEnv("MOCK_API_ADDR", ":8080"),
		MockDB:      getEnv("MOCK_API_DB", ":memory:"),
		GinMode:     getEnv("GIN_MODE", "release"),
	}

	return cfg, nil
}

func defaultStateDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "trackspring", "state.db")
}

// Validate validates the configuration and returns an error listing all problems
func (c *Config) Validate() error {
	var errors []string

	if u, err := url.Parse(c.APIURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}

	if c.HTTPTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must not be negative", c.HTTPTimeout))
	}

	if c.StateDB == "" {
		errors = append(errors, "state database path cannot be empty")
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
		}
	}

	if c.MockAddr == "" {
		errors = append(errors, "mock API address cannot be empty")
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errors = append(errors, fmt.Sprintf("invalid gin mode '%s': must be one of [debug release test]", c.GinMode))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SetupLogger configures the global zerolog logger to write to out.
//
// If the log format is not set, it defaults to human readable in debug
// mode and JSON otherwise.
func (c *Config) SetupLogger(out io.Writer) {
	debug := c.GinMode == "debug"

	output := out
	if (c.LogFormat == "" && debug) || c.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: out}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if parsed, err := zerolog.ParseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
		level = parsed
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
