package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EDGEOS_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.edgeos.city", cfg.APIURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Empty(t, cfg.Token)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EDGEOS_CONFIG_DIR", dir)

	content := `api_url: https://edgeos.example.com
token: file-token
tenant_id: tenant-1
popup_id: 7
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://edgeos.example.com", cfg.APIURL)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "tenant-1", cfg.TenantID)
	assert.Equal(t, int64(7), cfg.PopupID)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EDGEOS_CONFIG_DIR", dir)

	content := `api_url: https://edgeos.example.com
token: file-token
popup_id: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	t.Setenv("EDGEOS_API_URL", "https://staging.example.com")
	t.Setenv("EDGEOS_TOKEN", "env-token")
	t.Setenv("EDGEOS_TENANT_ID", "tenant-2")
	t.Setenv("EDGEOS_POPUP_ID", "9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.APIURL)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "tenant-2", cfg.TenantID)
	assert.Equal(t, int64(9), cfg.PopupID)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EDGEOS_CONFIG_DIR", dir)

	cfg := &Config{
		APIURL:         "https://edgeos.example.com",
		Token:          "token",
		TenantID:       "tenant-3",
		PopupID:        11,
		TimeoutSeconds: 30,
		Log:            LogConfig{Level: "info", Format: "text"},
	}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "token-bearing file is owner-only")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.TenantID, loaded.TenantID)
	assert.Equal(t, cfg.PopupID, loaded.PopupID)
	assert.Equal(t, cfg.Token, loaded.Token)
}

func TestDir_EnvWins(t *testing.T) {
	t.Setenv("EDGEOS_CONFIG_DIR", "/tmp/custom-edgeos")
	assert.Equal(t, "/tmp/custom-edgeos", Dir())
	assert.Equal(t, filepath.Join("/tmp/custom-edgeos", "config.yaml"), Path())
}
