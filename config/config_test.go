package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("WALLET_PROVIDER_URL", "")
	t.Setenv("WALLET_NOTICE_TTL", "")
	t.Setenv("WALLET_POLL_INTERVAL", "")
	os.Unsetenv("WALLET_NOTICE_TTL")
	os.Unsetenv("WALLET_POLL_INTERVAL")

	env, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, env.NoticeTTL)
	assert.Equal(t, 2*time.Second, env.PollInterval)
	assert.Empty(t, env.ProviderURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("WALLET_PROVIDER_URL", "http://127.0.0.1:8545")
	t.Setenv("WALLET_NOTICE_TTL", "2s")
	t.Setenv("WALLET_LOGGER", "true")

	env, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8545", env.ProviderURL)
	assert.Equal(t, 2*time.Second, env.NoticeTTL)
	assert.True(t, env.Logger)
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("WALLET_POLL_INTERVAL", "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WALLET_POLL_INTERVAL")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	require.NoError(t, Save(path, cfg))

	loaded := Load(path)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, "ws://127.0.0.1:1248", loaded.ActiveURL())
}

func TestLoadMissingOrBroken(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, Config{}, Load(filepath.Join(dir, "missing.json")))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o600))
	assert.Equal(t, Config{}, Load(broken))
}

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := LoadOrCreate(path)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestActivateAndRemove(t *testing.T) {
	cfg := DefaultConfig()

	require.True(t, cfg.Activate(1))
	assert.False(t, cfg.Providers[0].Active)
	assert.Equal(t, "http://127.0.0.1:8545", cfg.ActiveURL())
	assert.False(t, cfg.Activate(7))

	require.True(t, cfg.Remove(1))
	assert.Len(t, cfg.Providers, 1)
	assert.Empty(t, cfg.ActiveURL())
	assert.False(t, cfg.Remove(3))
}
