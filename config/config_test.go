package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv("THREATPLANE_LISTEN", "")
	t.Setenv("NVD_API_KEY", "")
	t.Setenv("IPINFO_TOKEN", "")
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "theme.yaml"), cfg.Resolve(cfg.ThemeFile))
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.DistPath())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := Default()
	cfg.ConfigDir = dir
	cfg.ListenAddr = "127.0.0.1:4000"
	cfg.ProjectRoot = "/srv/dashboard"
	cfg.DistDir = "public"
	cfg.ProxyTargets["/api/nvd"] = "http://mirror:8080"
	cfg.NVDAPIKey = "k"
	require.NoError(t, Save(cfg))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, filepath.Join(dir, "public"), loaded.DistPath())
}

func TestSaveReplacesExisting(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg := Default()
	cfg.ConfigDir = dir
	require.NoError(t, Save(cfg))
	cfg.ListenAddr = ":4100"
	require.NoError(t, Save(cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":4100", loaded.ListenAddr)
}

func TestLoadFillsDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"debug": true}`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, ".", cfg.ProjectRoot)
	assert.NotNil(t, cfg.ProxyTargets)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"listen": ":1"}`), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("THREATPLANE_LISTEN", ":9999")
	t.Setenv("NVD_API_KEY", "nvd-key")
	t.Setenv("IPINFO_TOKEN", "ip-token")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ListenAddr)

	h := cfg.ProxyHeaders()
	assert.Equal(t, "nvd-key", h["/api/nvd"]["apiKey"])
	assert.Equal(t, "Bearer ip-token", h["/api/ipinfo"]["Authorization"])
}

func TestProxyHeadersEmpty(t *testing.T) {
	assert.Empty(t, Default().ProxyHeaders())
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.ConfigDir = "/etc/threatplane"
	assert.Equal(t, "/abs/theme.yaml", cfg.Resolve("/abs/theme.yaml"))
	assert.Equal(t, "/etc/threatplane/theme.yaml", cfg.Resolve("theme.yaml"))
	assert.Equal(t, "", cfg.Resolve(""))
}
