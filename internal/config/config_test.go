package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=inv sslmode=disable", cfg.DSN())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_EXPORT_DIR", t.TempDir())
	t.Setenv("SERVER_PORT", "9090")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 2.0, cfg.App.DefaultSimulationMultiplier)
	assert.Equal(t, "none", cfg.Storage.Provider)
	assert.Equal(t, 60, cfg.Cache.ReportTTLSeconds)
	assert.Same(t, cfg, Load())
}
