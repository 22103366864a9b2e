package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port        int
	BindAddress string
}

type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnvInt("LDAP_PORT", 8000),
			BindAddress: getEnvString("LDAP_BIND_ADDRESS", "127.0.0.1"),
		},
		Logging: LoggingConfig{
			Level:  getEnvString("LDAP_LOG_LEVEL", "info"),
			Format: getEnvString("LDAP_LOG_FORMAT", "json"),
		},
	}
}

func (c *Config) Print() {
	slog.Info("configuration loaded",
		"port", c.Server.Port,
		"bind_address", c.Server.BindAddress,
		"log_level", c.Logging.Level,
		"log_format", c.Logging.Format,
	)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
