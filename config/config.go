package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	defaultIDBase   = 10000
	defaultDatabase = "sssutility.db"
)

// Config holds service configuration. Missing files are not an error; every
// field has a working default.
type Config struct {
	// IDBase is the first global widget identifier the allocator hands
	// out. Identifiers below it are reserved for the host.
	IDBase int `mapstructure:"id_base"`
	// Database is the widget-value store path. Empty disables persistence.
	Database string `mapstructure:"database"`
	// LogFile redirects log output when set.
	LogFile string `mapstructure:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		IDBase:   defaultIDBase,
		Database: defaultDatabase,
	}
}

// Load reads config.yaml from the XDG config directory, falling back to
// defaults when absent.
func Load() (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "sssutility"))
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "sssutility"))

	v.SetDefault("id_base", defaultIDBase)
	v.SetDefault("database", defaultDatabase)
	v.SetDefault("log_file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.IDBase < 1 {
		cfg.IDBase = defaultIDBase
	}
	return cfg, nil
}

// LoadFile reads configuration from an explicit path, for tests and the
// --config flag.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("id_base", defaultIDBase)
	v.SetDefault("database", defaultDatabase)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.IDBase < 1 {
		cfg.IDBase = defaultIDBase
	}
	return cfg, nil
}
