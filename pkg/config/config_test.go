package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	viper.Reset()
	t.Setenv("TUTUM_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("TUTUM_TOKEN", "")
	viper.Set("tutum.token", "abc123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, "https://dashboard.tutum.co/", cfg.BaseURL)
	assert.Equal(t, "v1", cfg.Version)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.Retry)
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("TUTUM_TOKEN", "env-token")
	t.Setenv("TUTUM_BASE_URL", "https://api.example.test/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "https://api.example.test/", cfg.BaseURL)
}

func TestConfigSettingsOverrideDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("TUTUM_TOKEN", "")
	viper.Set("tutum.token", "file-token")
	viper.Set("tutum.version", "v2")
	viper.Set("tutum.retry", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "v2", cfg.Version)
	assert.Equal(t, 30*time.Second, cfg.Retry)
}
