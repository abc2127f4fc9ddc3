package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds everything needed to build an API client. Values come
// from, in increasing precedence: defaults, the config file, a .env
// file, environment variables, and command-line flags bound by the
// caller.
type Config struct {
	Token   string
	BaseURL string
	Version string
	Timeout time.Duration
	Retry   time.Duration
}

const (
	defaultBaseURL = "https://dashboard.tutum.co/"
	defaultVersion = "v1"
	defaultTimeout = 30 * time.Second
)

// Load reads configuration from viper. Call after viper has read the
// config file (cobra's OnInitialize hook).
func Load() (*Config, error) {
	// .env is optional; missing files are not an error.
	_ = godotenv.Load()

	viper.SetDefault("tutum.base_url", defaultBaseURL)
	viper.SetDefault("tutum.version", defaultVersion)
	viper.SetDefault("tutum.timeout", defaultTimeout)

	_ = viper.BindEnv("tutum.token", "TUTUM_TOKEN")
	_ = viper.BindEnv("tutum.base_url", "TUTUM_BASE_URL")

	cfg := &Config{
		Token:   viper.GetString("tutum.token"),
		BaseURL: viper.GetString("tutum.base_url"),
		Version: viper.GetString("tutum.version"),
		Timeout: viper.GetDuration("tutum.timeout"),
		Retry:   viper.GetDuration("tutum.retry"),
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf(
			"no auth token configured: set TUTUM_TOKEN or tutum.token in the config file",
		)
	}
	return cfg, nil
}

// DefaultConfigPath returns the default config file location,
// $HOME/.tutum.yaml.
func DefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return home + "/.tutum.yaml", nil
}
