package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultServer    = "http://localhost:8080"
	defaultTimeout   = 10 * time.Minute
	defaultConfigDir = ".mobisync"
	configName       = "syncctl"
)

type Config struct {
	Env     string
	Server  string
	Secret  string
	Timeout time.Duration
}

// Load читает конфигурацию syncctl: файл (явный или ~/.mobisync/syncctl.yaml) и переменные окружения.
// Отсутствие файла не ошибка.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("env", "prod")
	v.SetDefault("server", defaultServer)
	v.SetDefault("timeout", defaultTimeout)

	_ = v.BindEnv("env", "SYNCCTL_ENV")
	_ = v.BindEnv("server", "SYNCCTL_SERVER")
	_ = v.BindEnv("secret", "SYNC_SECRET")
	_ = v.BindEnv("timeout", "SYNCCTL_TIMEOUT")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, defaultConfigDir))
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Env:     v.GetString("env"),
		Server:  strings.TrimRight(v.GetString("server"), "/"),
		Secret:  v.GetString("secret"),
		Timeout: v.GetDuration("timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет адрес сервера. Вызывается повторно после применения флагов.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.Server)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}
