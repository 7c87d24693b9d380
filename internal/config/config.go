// Package config loads layered configuration: built-in defaults, then an
// optional YAML file, then SEKAI_ environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigPathEnvVar names the YAML file to load
	ConfigPathEnvVar = "SEKAI_CONFIG"
	// EnvPrefix prefixes every override; "__" separates sections
	EnvPrefix = "SEKAI_"
)

// DefaultConfigPaths are searched when SEKAI_CONFIG is unset
var DefaultConfigPaths = []string{"sekai.yaml", "sekai.yml"}

type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Assets   AssetsConfig   `koanf:"assets"`
	Prefs    PrefsConfig    `koanf:"prefs"`
	Debounce DebounceConfig `koanf:"debounce"`
	Log      LogConfig      `koanf:"log"`
	Server   ServerConfig   `koanf:"server"`
	Indexer  IndexerConfig  `koanf:"indexer"`
}

type CatalogConfig struct {
	URL     string        `koanf:"url" validate:"omitempty,url"`
	File    string        `koanf:"file"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

type AssetsConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

type PrefsConfig struct {
	Dir      string `koanf:"dir"`
	InMemory bool   `koanf:"in_memory"`
}

// DebounceConfig holds the settle times of the input channels
type DebounceConfig struct {
	Query    time.Duration `koanf:"query" validate:"gte=0"`
	Choseong time.Duration `koanf:"choseong" validate:"gtefield=Query"`
	Range    time.Duration `koanf:"range" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
	File   string `koanf:"file"`
}

type ServerConfig struct {
	Addr        string   `koanf:"addr" validate:"required"`
	CatalogFile string   `koanf:"catalog_file" validate:"required"`
	CORSOrigins []string `koanf:"cors_origins"`
	// RateLimit is requests per minute per client; 0 disables limiting
	RateLimit int `koanf:"rate_limit" validate:"gte=0"`
}

type IndexerConfig struct {
	Readings bool `koanf:"readings"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	return Config{
		Catalog: CatalogConfig{
			URL:     "https://api.rilaksekai.com/api/songs",
			Timeout: 15 * time.Second,
		},
		Assets: AssetsConfig{BaseURL: "https://asset.rilaksekai.com"},
		Prefs:  PrefsConfig{Dir: filepath.Join(configDir, "sekai-chart-browser", "prefs")},
		Debounce: DebounceConfig{
			Query:    100 * time.Millisecond,
			Choseong: 400 * time.Millisecond,
			Range:    200 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(cacheDir, "sekai-chart-browser", "sekai-browser.log"),
		},
		Server: ServerConfig{
			Addr:        ":4000",
			CatalogFile: "public/data/songs.json",
			CORSOrigins: []string{"*"},
		},
		Indexer: IndexerConfig{Readings: true},
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Catalog.URL == "" && c.Catalog.File == "" {
		return fmt.Errorf("invalid configuration: catalog.url or catalog.file is required")
	}
	return nil
}

// Load builds the configuration. An explicit path wins over SEKAI_CONFIG
// and the default search paths.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := Defaults()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitList(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps SEKAI_SERVER__RATE_LIMIT to server.rate_limit.
// SEKAI_CONFIG itself is not a setting.
func envTransformFunc(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

// splitList turns a comma-separated env value into a list
func splitList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}
