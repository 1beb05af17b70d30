package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envNames {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "aiminderdb", cfg.Database.Name)
	assert.Equal(t, "aiminder", cfg.Database.User)
	assert.Equal(t, "aiminder", cfg.Database.Password)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, DriverPQ, cfg.Driver)
}

func TestLoad_PrimaryNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "6543")
	t.Setenv("DATABASE_NAME", "app")
	t.Setenv("DATABASE_USERNAME", "alice")
	t.Setenv("DATABASE_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "app", cfg.Database.Name)
	assert.Equal(t, "alice", cfg.Database.User)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoad_AlternateNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_HOST", "pg")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "other")
	t.Setenv("POSTGRES_USER", "bob")
	t.Setenv("POSTGRES_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pg", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "other", cfg.Database.Name)
	assert.Equal(t, "bob", cfg.Database.User)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestLoad_PrimaryWinsOverAlternate(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_HOST", "primary")
	t.Setenv("POSTGRES_HOST", "alternate")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Database.Host)
}

func TestLoad_Driver(t *testing.T) {
	clearEnv(t)
	t.Setenv("PGQ_DRIVER", " PGX ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPGX, cfg.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"PGQ_DRIVER": "mysql"}},
		{name: "port out of range", env: map[string]string{"DATABASE_PORT": "70000"}},
		{name: "port not a number", env: map[string]string{"DATABASE_PORT": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabase_Address(t *testing.T) {
	d := Database{Host: "localhost", Port: 5432, Name: "db", User: "u", Password: "p"}
	assert.Equal(t, "u@localhost:5432/db", d.Address())
}
