package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ui-labs/folder-extractor-sub000/internal/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Rules.SkipHidden)
	assert.True(t, cfg.Dedup.SameName)
	assert.False(t, cfg.Dedup.Global)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	testutil.CreateFile(t, path, `
watched_folders:
  - /watch/downloads
destination: /sorted
rules:
  exclude:
    - "**/*.part"
  skip_hidden: false
dedup:
  same_name: true
  global: true
ai:
  enabled: true
  model: gpt-4o
log_level: debug
workers: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/watch/downloads"}, cfg.WatchedFolders)
	assert.Equal(t, "/sorted", cfg.Destination)
	assert.Equal(t, []string{"**/*.part"}, cfg.Rules.Exclude)
	assert.False(t, cfg.Rules.SkipHidden)
	assert.True(t, cfg.Dedup.Global)
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	testutil.CreateFile(t, path, "destination: /sorted\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/sorted", cfg.Destination)
	assert.True(t, cfg.Rules.SkipHidden)
	assert.True(t, cfg.Dedup.SameName)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	testutil.CreateFile(t, path, "destination: [unclosed\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	testutil.CreateFile(t, path, "ai:\n  enabled: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.AI.APIKey)
}

func TestLoad_ExplicitAPIKeyWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	testutil.CreateFile(t, path, "ai:\n  api_key: sk-file\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.AI.APIKey)
}
