package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SCRIVANO"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	DefaultBackend          = BackendSQLite
	DefaultAutosaveInterval = 10 * time.Second
	DefaultLogLevel         = "info"
	DefaultExportDir        = "."
)

// Config holds the resolved runtime settings
type Config struct {
	DataDir          string        `mapstructure:"data_dir"`
	Backend          string        `mapstructure:"backend"`
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFile          string        `mapstructure:"log_file"`
	ExportDir        string        `mapstructure:"export_dir"`
}

// DataDir returns the data directory from SCRIVANO_DATA_DIR env var,
// falling back to $XDG_DATA_HOME/scrivano.
func DataDir() string {
	if env := os.Getenv(EnvPrefix + "_DATA_DIR"); env != "" {
		return env
	}
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "scrivano")
}

// ConfigFile returns the path of the optional YAML config file
func ConfigFile() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "scrivano", "config.yaml")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, fallback...)...)
}

// Load resolves configuration from defaults, the config file, a .env file in
// the working directory and SCRIVANO_* environment variables, in increasing
// order of precedence. A missing config file or .env is not an error.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	return LoadFrom(viper.New(), ConfigFile())
}

// LoadFrom resolves configuration into v, reading configPath if it exists
func LoadFrom(v *viper.Viper, configPath string) (*Config, error) {
	v.SetDefault("data_dir", DataDir())
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("autosave_interval", DefaultAutosaveInterval.String())
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("export_dir", DefaultExportDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.ExportDir = expandHome(cfg.ExportDir)
	cfg.LogFile = expandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the resolved values
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendSQLite, BackendFile, BackendMemory)
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("autosave interval must be positive, got %s", c.AutosaveInterval)
	}
	if c.DataDir == "" && c.Backend != BackendMemory {
		return errors.New("data directory is required")
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
