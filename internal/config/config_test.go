package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.ListenAddr)
	require.Equal(t, "./data/userhub.json", cfg.DataPath)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Empty(t, cfg.JWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("USERHUB_LISTEN", ":8080")
	t.Setenv("USERHUB_DATA_PATH", "/var/lib/userhub/db.json")
	t.Setenv("USERHUB_JWT_SECRET", "super-secret")
	t.Setenv("USERHUB_TOKEN_TTL", "1h30m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "/var/lib/userhub/db.json", cfg.DataPath)
	require.Equal(t, "super-secret", cfg.JWTSecret)
	require.Equal(t, 90*time.Minute, cfg.TokenTTL)
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("USERHUB_TOKEN_TTL", "-5m")
	_, err := Load()
	require.Error(t, err)
}
