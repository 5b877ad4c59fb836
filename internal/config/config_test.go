package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 50, cfg.Database.MaxOpenConns)
	require.Equal(t, 24, cfg.Auth.TokenTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_MAX_OPEN_CONNS", "5")
	t.Setenv("MYSQL_MAX_IDLE_CONNS", "not-a-number")

	cfg := Load()

	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, 5, cfg.Database.MaxOpenConns)
	// unparsable values fall back to the default
	require.Equal(t, 10, cfg.Database.MaxIdleConns)
}

func TestDSN(t *testing.T) {
	t.Setenv("MYSQL_USER", "realm")
	t.Setenv("MYSQL_PASSWORD", "secret")
	t.Setenv("MYSQL_HOST", "127.0.0.1")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_DATABASE", "realm_test")

	cfg := Load()

	require.Equal(t,
		"realm:secret@tcp(127.0.0.1:3307)/realm_test?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}
