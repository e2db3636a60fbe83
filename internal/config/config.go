package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog store types.
const (
	StoreJSONL  = "jsonl"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// RedisConfig contains connection details for a Redis catalog.
type RedisConfig struct {
	Addr        string `yaml:"addr"`
	PasswordEnv string `yaml:"password_env"`
	DB          int    `yaml:"db"`
	KeyPrefix   string `yaml:"key_prefix"`
}

// Password reads the password from the environment variable named by
// PasswordEnv.
func (c *RedisConfig) Password() string {
	if c == nil || c.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(c.PasswordEnv)
}

// CatalogConfig selects and configures the store scores are loaded from.
type CatalogConfig struct {
	Type  string       `yaml:"type"`
	Path  string       `yaml:"path,omitempty"`
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// RecommendConfig configures the recommendation defaults.
type RecommendConfig struct {
	DefaultCount int `yaml:"default_count"`
}

// SummaryConfig configures the corpus summary.
type SummaryConfig struct {
	MaxTerms int `yaml:"max_terms"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures metrics output. An empty Textfile disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// TUIConfig configures the interactive browser.
type TUIConfig struct {
	PageSize        int `yaml:"page_size"`
	Recommendations int `yaml:"recommendations"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Recommend RecommendConfig `yaml:"recommend"`
	Summary   SummaryConfig   `yaml:"summary"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	TUI       TUIConfig       `yaml:"tui"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/partituras/config.yaml.
// If neither exists, it writes defaults to ~/.config/partituras/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports settings that cannot be used to open a catalog.
func (c *AppConfig) Validate() error {
	switch c.Catalog.Type {
	case StoreJSONL, StoreSQLite:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog type %q requires a path", c.Catalog.Type)
		}
	case StoreRedis:
		if c.Catalog.Redis == nil || c.Catalog.Redis.Addr == "" {
			return errors.New("catalog type \"redis\" requires redis.addr")
		}
	default:
		return fmt.Errorf("unknown catalog type %q", c.Catalog.Type)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "partituras", "config.yaml"), nil
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scores.jsonl"
	}
	return filepath.Join(home, ".local", "share", "partituras", "scores.jsonl")
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Catalog:   CatalogConfig{Type: StoreJSONL, Path: defaultDataPath()},
		Recommend: RecommendConfig{DefaultCount: 5},
		Summary:   SummaryConfig{MaxTerms: 5},
		Log:       LogConfig{Level: "info", Format: "console"},
		TUI:       TUIConfig{PageSize: 5, Recommendations: 5},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Catalog.Type == "" {
		cfg.Catalog.Type = StoreJSONL
	}
	if cfg.Catalog.Type == StoreJSONL && cfg.Catalog.Path == "" {
		cfg.Catalog.Path = defaultDataPath()
	}
	if cfg.Catalog.Type == StoreRedis && cfg.Catalog.Redis != nil {
		if cfg.Catalog.Redis.Addr == "" {
			cfg.Catalog.Redis.Addr = "localhost:6379"
		}
		if cfg.Catalog.Redis.PasswordEnv == "" {
			cfg.Catalog.Redis.PasswordEnv = "PARTITURAS_REDIS_PASSWORD"
		}
		if cfg.Catalog.Redis.KeyPrefix == "" {
			cfg.Catalog.Redis.KeyPrefix = "partitura:"
		}
	}
	if cfg.Recommend.DefaultCount == 0 {
		cfg.Recommend.DefaultCount = 5
	}
	if cfg.Summary.MaxTerms == 0 {
		cfg.Summary.MaxTerms = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.TUI.PageSize == 0 {
		cfg.TUI.PageSize = 5
	}
	if cfg.TUI.Recommendations == 0 {
		cfg.TUI.Recommendations = 5
	}
}
