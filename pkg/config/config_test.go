package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.BindAddress)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadCustomPort(t *testing.T) {
	t.Cleanup(func() { os.Unsetenv("LDAP_PORT") })
	os.Setenv("LDAP_PORT", "10389")

	cfg := Load()

	assert.Equal(t, 10389, cfg.Server.Port)
}

func TestLoadCustomBindAddress(t *testing.T) {
	t.Cleanup(func() { os.Unsetenv("LDAP_BIND_ADDRESS") })
	os.Setenv("LDAP_BIND_ADDRESS", "0.0.0.0")

	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.BindAddress)
}

func TestLoadCustomLogging(t *testing.T) {
	t.Cleanup(func() {
		os.Unsetenv("LDAP_LOG_LEVEL")
		os.Unsetenv("LDAP_LOG_FORMAT")
	})
	os.Setenv("LDAP_LOG_LEVEL", "debug")
	os.Setenv("LDAP_LOG_FORMAT", "text")

	cfg := Load()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadInvalidPortFallsBackToDefault(t *testing.T) {
	t.Cleanup(func() { os.Unsetenv("LDAP_PORT") })
	os.Setenv("LDAP_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestConfigPrintDoesNotPanic(t *testing.T) {
	cfg := Load()
	assert.NotPanics(t, func() {
		cfg.Print()
	})
}
