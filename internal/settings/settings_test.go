package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  host: dnac.example.net\n  verify_ssl: true\n"), 0o600))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "dnac.example.net", cfg.Server.Host)
	assert.True(t, cfg.Server.VerifySSL)
	assert.Equal(t, 443, cfg.Server.Port)
	assert.Equal(t, "devnetuser", cfg.Auth.Username)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings")
}

func TestSaveRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	store := NewStore(path)
	cfg := Default()
	cfg.Server.Host = "10.0.0.5"
	cfg.Server.Timeout = 45
	cfg.Auth.Password = "s3cret"

	require.NoError(t, store.Save(cfg))
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "verify_ssl: false")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be renamed away")
}

func TestSaveRoundTripTOML(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.toml"))
	cfg := Default()
	cfg.Server.Port = 8443

	require.NoError(t, store.Save(cfg))
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[server]")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 8443, loaded.Server.Port)
}

func TestNewStoreDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewStore("  ").Path())
}
