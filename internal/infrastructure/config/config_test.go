package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "coldstore-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodySize)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.Contains(t, cfg.HTTP.CORSAllowHeaders, "X-Tenant-ID")
	assert.Equal(t, 4, cfg.Ledger.FiscalYearStartMonth)
	assert.Equal(t, time.April, cfg.Ledger.StartMonth())
	assert.Equal(t, cfg.App.Name, cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.App.Port = "9090"
	cfg.Ledger.FiscalYearStartMonth = 1
	applyDefaults(cfg)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 1, cfg.Ledger.FiscalYearStartMonth)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		require.NoError(t, valid().validate())
	})

	t.Run("fiscal year start month out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Ledger.FiscalYearStartMonth = 13
		assert.Error(t, cfg.validate())

		cfg.Ledger.FiscalYearStartMonth = 0
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires database password", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.Password = ""
		assert.Error(t, cfg.validate())

		cfg.Database.Password = "secret"
		assert.NoError(t, cfg.validate())
	})
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "ledger",
		Password: "pw",
		DBName:   "coldstore",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.local port=5433 user=ledger password=pw dbname=coldstore sslmode=require",
		db.DSN())
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.RedisAddr())
}

func TestEnvironmentChecks(t *testing.T) {
	cfg := &Config{App: AppConfig{Env: "production"}}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.App.Env = "development"
	assert.True(t, cfg.IsDevelopment())
}
