package config

import (
	"encoding/json"
	"os"

	"github.com/fincaforms/fincaforms/internal/flagx"
	"github.com/fincaforms/fincaforms/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only fields present
// in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	DatabaseDSN        string         `json:"database_dsn"`
	DatabasePassword   string         `json:"database_password"`
	Storage            string         `json:"storage"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
	LogLevel           string         `json:"log_level"`
	CORSAllowedOrigins []string       `json:"cors_allowed_origins"`
}

// parseJson loads the file named by -c/-config into config. Without the
// flag nothing happens; an unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DatabasePassword, c.DatabasePassword)
	setString(&config.Storage, c.Storage)
	setString(&config.LogLevel, c.LogLevel)
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
