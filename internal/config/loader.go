package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/mapstructure"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "dirtools"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// EnvPrefix is the prefix for environment overrides, e.g. DIRTOOLS_LOG_LEVEL
	EnvPrefix = "dirtools"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// envOverrides lists the settings that may be supplied through the environment.
// Pointer fields distinguish "unset" from an explicit zero value.
type envOverrides struct {
	LogLevel         *string `envconfig:"LOG_LEVEL"`
	LogFormat        *string `envconfig:"LOG_FORMAT"`
	DecodeSampleSize *int    `envconfig:"DECODE_SAMPLE_SIZE"`
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs     FileSystem
	useEnv bool
}

// NewLoader creates a production Loader using the real filesystem and environment
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}, useEnv: true}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing).
// Environment overrides are not applied.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads configuration from ~/.config/dirtools/config.json, merges it over
// the defaults, then applies DIRTOOLS_* environment overrides.
// Returns default config if the dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: The file is decoded into a generic map first and then merged over the
// defaults with mapstructure, so explicit zero values (0, false, "") override
// defaults while missing keys leave them untouched.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := l.mergeFile(cfg); err != nil {
		return nil, err
	}

	if l.useEnv {
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) mergeFile(cfg *Config) error {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return nil // Use defaults if can't get home dir
	}

	configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)

	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}

	if env.LogLevel != nil {
		cfg.Log.Level = *env.LogLevel
	}
	if env.LogFormat != nil {
		cfg.Log.Format = *env.LogFormat
	}
	if env.DecodeSampleSize != nil {
		cfg.Counter.DecodeSampleSize = *env.DecodeSampleSize
	}

	return nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
