package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile or environment.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Renamer RenamerConfig `json:"renamer"`
	Counter CounterConfig `json:"counter"`
	Log     LogConfig     `json:"log"`
}

type RenamerConfig struct {
	RespectGitignore bool `json:"respect_gitignore"` // Default: false
}

type CounterConfig struct {
	RespectGitignore bool `json:"respect_gitignore"` // Default: false

	// Bytes that must decode as UTF-8 before a file counts as text.
	DecodeSampleSize int `json:"decode_sample_size"` // Default: 8192

	DefaultFormat string `json:"default_format"` // Default: "text"
}

type LogConfig struct {
	Level  string `json:"level"`  // Default: "warning"
	Format string `json:"format"` // Default: "text"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Renamer: RenamerConfig{
			RespectGitignore: false,
		},
		Counter: CounterConfig{
			RespectGitignore: false,
			DecodeSampleSize: 8192,
			DefaultFormat:    "text",
		},
		Log: LogConfig{
			Level:  "warning",
			Format: "text",
		},
	}
}
