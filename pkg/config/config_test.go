package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "engineer_on_demand", cfg.Database.Database)
	assert.Equal(t, "mock", cfg.Geocoder.Provider)
	assert.Equal(t, 3, cfg.Discovery.DefaultLimit)
	assert.Equal(t, 50.0, cfg.Discovery.DefaultRadiusMiles)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DISCOVERY_DEFAULT_LIMIT", "5")
	t.Setenv("DISCOVERY_DEFAULT_RADIUS_MILES", "15")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5, cfg.Discovery.DefaultLimit)
	assert.Equal(t, 15.0, cfg.Discovery.DefaultRadiusMiles)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", Database: "eod", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=eod sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
