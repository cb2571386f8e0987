package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "POSTGRES_PORT", "REDIS_ADDR",
		"REDIS_DB", "BCRYPT_COST", "PRODUCT_CACHE_TTL", "RECONCILE_INTERVAL", "ALLOWED_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, 5*time.Minute, cfg.ProductCacheTTL)
	assert.Equal(t, time.Duration(0), cfg.ReconcileInterval)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("RECONCILE_INTERVAL", "30s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.PostgresDSN())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"POSTGRES_PORT":      "abc",
		"RECONCILE_INTERVAL": "soon",
		"STORE_DRIVER":       "mysql",
		"LOG_LEVEL":          "loud",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestPostgresDSN_FromParts(t *testing.T) {
	cfg := Config{
		PostgresHost: "db", PostgresPort: 5433, PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "shop", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=shop sslmode=disable", cfg.PostgresDSN())
}
