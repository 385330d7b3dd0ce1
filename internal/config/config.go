package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/saadjs/bump-cli/internal/app"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        LogConfig                 `yaml:"log"`
	Navigation pregnancy.LookAheadLimits `yaml:"navigation"`
	Server     ServerConfig              `yaml:"server"`
	DB         DBConfig                  `yaml:"db"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

func Default() *Config {
	return &Config{
		Log:        LogConfig{Level: "warn", Console: true, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 30},
		Navigation: pregnancy.DefaultLookAheadLimits(),
		Server:     ServerConfig{Addr: "127.0.0.1:8787", AllowOrigins: []string{"*"}},
	}
}

// Load builds the effective config: defaults, then the YAML file, then
// BUMP_* environment variables (a .env file in the working directory is read
// first). An empty path means the user config dir, where a missing file is
// fine; an explicit path must exist.
func Load(path string) (*Config, error) {
	c := Default()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := app.DefaultConfigPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	envOverride(&c.DB.Path, "BUMP_DB")
	envOverride(&c.Log.Level, "BUMP_LOG_LEVEL")
	envOverride(&c.Log.File, "BUMP_LOG_FILE")
	envOverride(&c.Server.Addr, "BUMP_ADDR")
	envOverrideInt(&c.Navigation.Free, "BUMP_FREE_LOOK_AHEAD")
	envOverrideInt(&c.Navigation.Premium, "BUMP_PREMIUM_LOOK_AHEAD")

	// With console output off and no file configured, logs go to the
	// default file instead of being dropped.
	if !c.Log.Console && strings.TrimSpace(c.Log.File) == "" {
		if p, err := app.DefaultLogPath(); err == nil {
			c.Log.File = p
		}
	}

	if c.Navigation.Free < 0 || c.Navigation.Premium < 0 {
		return nil, fmt.Errorf("navigation look-ahead must be >= 0")
	}
	return c, nil
}

// DBPath resolves the database location; flag beats config beats default.
func (c *Config) DBPath(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(c.DB.Path); v != "" {
		return v, nil
	}
	return app.DefaultDBPath()
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
