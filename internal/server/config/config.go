// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// ErrMissingStoreCredential means the document store password was not
// supplied. The server refuses to start without it.
var ErrMissingStoreCredential = errors.New("database password is not set")

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx), without the password.
//   - DatabasePassword: store credential injected into the DSN at startup.
//   - Storage: "postgres" or "memory".
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - LogLevel: debug, info, warn or error.
//   - CORSAllowedOrigins: origins accepted by the CORS middleware.
type Config struct {
	EndpointAddrHTTP   string
	DatabaseDSN        string
	DatabasePassword   string
	Storage            string
	ShutdownTimeout    time.Duration
	LogLevel           string
	CORSAllowedOrigins []string
}

// LoadDefaults populates Config with development defaults. There is no
// default password.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":4000"
	c.DatabaseDSN = "postgres://postgres@localhost:5432/farm?sslmode=disable"
	c.Storage = StoragePostgres
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.CORSAllowedOrigins = []string{"*"}
}

// Validate checks the settings that must hold before the server starts.
func (c *Config) Validate() error {
	switch c.Storage {
	case StoragePostgres:
		if c.DatabasePassword == "" {
			return ErrMissingStoreCredential
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
