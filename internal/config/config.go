package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAPIBaseURL     = "https://testdns.artizence.com/api/v1"
	DefaultRequestTimeout = 30 * time.Second
)

type Config struct {
	APIBaseURL     string
	OrganizationID string
	SessionDir     string
	RequestTimeout time.Duration
}

// Load resolves configuration from an optional config file plus environment
// variables prefixed RECRUITDESK_ (e.g. RECRUITDESK_API_BASE_URL). The
// session directory defaults to the user config dir.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECRUITDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("organization_id", "")
	v.SetDefault("session_dir", "")
	v.SetDefault("request_timeout_seconds", int(DefaultRequestTimeout/time.Second))

	if path := strings.TrimSpace(os.Getenv("RECRUITDESK_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "recruitdesk"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, err
			}
		}
	}

	cfg := Config{
		APIBaseURL:     strings.TrimSpace(v.GetString("api_base_url")),
		OrganizationID: strings.TrimSpace(v.GetString("organization_id")),
		SessionDir:     strings.TrimSpace(v.GetString("session_dir")),
		RequestTimeout: time.Duration(v.GetInt("request_timeout_seconds")) * time.Second,
	}
	if cfg.SessionDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			home, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return Config{}, homeErr
			}
			dir = filepath.Join(home, ".config")
		}
		cfg.SessionDir = filepath.Join(dir, "recruitdesk")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return cfg, nil
}
