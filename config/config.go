package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	Config struct {
		App       `json:"app"       toml:"app"`
		HTTP      `json:"http"      toml:"http"`
		Upstream  `json:"upstream"  toml:"upstream"`
		Dashboard `json:"dashboard" toml:"dashboard"`
		Log       `json:"logger"    toml:"logger"`
	}

	App struct {
		Name        string `json:"name"        toml:"name"        env:"APP_NAME"  env-default:"wallet-gateway"`
		Environment string `json:"environment" toml:"environment" env:"ENV_NAME"  env-default:"dev"`
		Debug       bool   `json:"debug"       toml:"debug"       env:"DEBUG"     env-default:"false"`
	}

	HTTP struct {
		Port          string `json:"port"           toml:"port"           env:"HTTP_PORT"      env-default:"4000"`
		AllowedOrigin string `json:"allowed_origin" toml:"allowed_origin" env:"ALLOWED_ORIGIN" env-default:"http://localhost:5173"`
	}

	// Upstream holds the credentials of the wallet provider. APISecret is only
	// ever used as an HMAC key and must never be logged or transmitted.
	Upstream struct {
		APIKey    string        `json:"api_key"    toml:"api_key"    env:"YAYA_API_KEY"`
		APISecret string        `json:"api_secret" toml:"api_secret" env:"YAYA_API_SECRET"`
		BaseURL   string        `json:"base_url"   toml:"base_url"   env:"YAYA_BASE_URL"`
		Timeout   time.Duration `json:"timeout"    toml:"timeout"    env:"YAYA_TIMEOUT" env-default:"15s"`
	}

	Dashboard struct {
		GatewayURL string   `json:"gateway_url" toml:"gateway_url" env:"DASHBOARD_GATEWAY_URL" env-default:"http://localhost:4000"`
		Accounts   []string `json:"accounts"    toml:"accounts"    env:"DASHBOARD_ACCOUNTS"    env-default:"yayawalletpi,antenehgebey,tewobstatewo,surafelaraya" env-separator:","`
		PageSize   int      `json:"page_size"   toml:"page_size"   env:"DASHBOARD_PAGE_SIZE"   env-default:"5"`
	}

	Log struct {
		Level slog.Level `json:"level" toml:"level" env:"LOG_LEVEL"`
	}
)

// ConfigurationError reports a required setting that is absent. It is fatal
// at startup and never recoverable per request.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is required", e.Field)
}

// LoadConfig reads config.toml or config.json next to this package when
// present, then a .env file in the working directory. Process environment is
// applied on every read and always fills the gaps.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	_, b, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(b)

	loaded := false
	for _, name := range []string{"config.toml", "config.json"} {
		path := filepath.Join(basePath, name)
		if !exists(path) {
			continue
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
		loaded = true
		break
	}

	if exists(".env") {
		if err := cleanenv.ReadConfig(".env", cfg); err != nil {
			return nil, fmt.Errorf("dotenv read error: %w", err)
		}
		loaded = true
	}

	if !loaded {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("env read error: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks the settings the gateway cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.Upstream.APIKey == "":
		return &ConfigurationError{Field: "YAYA_API_KEY"}
	case c.Upstream.APISecret == "":
		return &ConfigurationError{Field: "YAYA_API_SECRET"}
	case c.Upstream.BaseURL == "":
		return &ConfigurationError{Field: "YAYA_BASE_URL"}
	}
	return nil
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
