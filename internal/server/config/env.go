package config

import (
	"os"
	"strings"
)

// parseEnv overlays values from the process environment. PORT follows the
// PaaS convention and only carries the port number.
func parseEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	setString(&config.DatabaseDSN, os.Getenv("DATABASE_DSN"))
	setString(&config.DatabasePassword, os.Getenv("DATABASE_PASSWORD"))
	setString(&config.Storage, os.Getenv("STORAGE"))
	setString(&config.LogLevel, os.Getenv("LOG_LEVEL"))
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORSAllowedOrigins = strings.Split(origins, ",")
	}
}
