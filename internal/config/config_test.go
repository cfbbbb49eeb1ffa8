package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8002", cfg.Server.Port)
	assert.Equal(t, "/api/workspaces", cfg.Server.BasePath)
	assert.Equal(t, "workspace_board", cfg.Database.Name)
	assert.Equal(t, "https://www.googleapis.com/books/v1", cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.SearchCacheTTL)

	require.Len(t, cfg.Board.Columns, 3)
	assert.Equal(t, "to-read", cfg.Board.Columns[0].ID)
	assert.Equal(t, "Cited", cfg.Board.Columns[2].Title)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9100"
  mode: release
board:
  columns:
    - id: backlog
      title: Backlog
    - id: done
      title: Done
catalog:
  search_cache_ttl: 5m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.SearchCacheTTL)
	require.Len(t, cfg.Board.Columns, 2)
	assert.Equal(t, "backlog", cfg.Board.Columns[0].ID)

	// Untouched sections keep their defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("PORT", "9200")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "9200", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_EmptyColumnSetRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
board:
  columns: []
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Name:     "workspace_board",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=workspace_board sslmode=disable",
		db.GetDSN())
}
