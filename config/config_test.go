package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("PAGE_CACHE_BACKEND", "")

	cfg := LoadConfig()
	require.Equal(t, StorageMemory, cfg.StorageType)
	require.Equal(t, 10, cfg.PerPage)
	require.Equal(t, 20*time.Second, cfg.PageCache.TTL)
	require.Equal(t, CacheMemory, cfg.PageCache.Backend)
	require.Equal(t, 14*24*time.Hour, cfg.Auth.SessionTTL)
	require.Equal(t, "./media", cfg.Media.Root)
	require.Equal(t, 5.0, cfg.RateLimit.RPS)
}

func TestLoadConfig_Postgres(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", StoragePostgres)
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "yatube")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_SSLMODE", "")

	cfg := LoadConfig()
	require.Equal(t, "postgres://u:p@localhost:5432/yatube?sslmode=disable", cfg.Postgres.GetDSN())
}

func TestLoadConfig_Panics(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.Panics(t, func() { LoadConfig() })

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("POSTS_PER_PAGE", "ten")
	require.Panics(t, func() { LoadConfig() })
}
