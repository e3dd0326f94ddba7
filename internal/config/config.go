// Package config reads settings from an optional .env file and the STARMAP_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every setting for the starmap commands.
type Config struct {
	Logging Logging
	Viewer  Viewer
	Server  Server
}

type Logging struct {
	Level  string
	Format string // "console" or "json"
}

type Viewer struct {
	FPS        int
	GridSlices int
}

type Server struct {
	Port         int
	HostKey      string
	SessionRate  float64 // new sessions per second, per remote host
	SessionBurst int
	MetricsAddr  string
}

// Load reads an optional .env file and then the STARMAP_* environment.
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		Logging: Logging{
			Level:  getEnv("STARMAP_LOG_LEVEL", "info"),
			Format: getEnv("STARMAP_LOG_FORMAT", "console"),
		},
		Viewer: Viewer{
			FPS:        getEnvInt("STARMAP_FPS", 30),
			GridSlices: getEnvInt("STARMAP_GRID_SLICES", 10),
		},
		Server: Server{
			Port:         getEnvInt("STARMAP_SSH_PORT", 2222),
			HostKey:      getEnv("STARMAP_SSH_HOST_KEY", "starmap_host_key"),
			SessionRate:  getEnvFloat("STARMAP_SSH_RATE", 1),
			SessionBurst: getEnvInt("STARMAP_SSH_BURST", 3),
			MetricsAddr:  getEnv("STARMAP_METRICS_ADDR", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("STARMAP_LOG_FORMAT must be console or json, got %q", c.Logging.Format)
	}
	if c.Viewer.FPS < 1 || c.Viewer.FPS > 240 {
		return fmt.Errorf("STARMAP_FPS must be between 1 and 240, got %d", c.Viewer.FPS)
	}
	if c.Viewer.GridSlices < 0 {
		return fmt.Errorf("STARMAP_GRID_SLICES must not be negative")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("STARMAP_SSH_PORT out of range: %d", c.Server.Port)
	}
	if c.Server.SessionRate <= 0 {
		return fmt.Errorf("STARMAP_SSH_RATE must be positive")
	}
	if c.Server.SessionBurst < 1 {
		return fmt.Errorf("STARMAP_SSH_BURST must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}
