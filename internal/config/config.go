package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the CLI shell's configuration. The recording engine itself is
// configured programmatically; nothing here reaches into a running session.
type Config struct {
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
	Audio    AudioConfig  `mapstructure:"audio" yaml:"audio"`
	Output   OutputConfig `mapstructure:"output" yaml:"output"`
}

type AudioConfig struct {
	// Backend is "auto", "miniaudio" or "portaudio".
	Backend string `mapstructure:"backend" yaml:"backend"`
	// QueueDepth is the batch channel capacity between capture and writer.
	QueueDepth int `mapstructure:"queue_depth" yaml:"queue_depth"`
}

type OutputConfig struct {
	// Directory receives recordings whose path the caller did not choose.
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			Backend:    "auto",
			QueueDepth: 128,
		},
		Output: OutputConfig{
			Directory: defaultRecordingsDir(),
		},
	}
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file yields the defaults; a malformed file is an
// error.
func Load(path string) (*Config, error) {
	v := viper.New()

	cfg := Default()
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("audio.backend", cfg.Audio.Backend)
	v.SetDefault("audio.queue_depth", cfg.Audio.QueueDepth)
	v.SetDefault("output.directory", cfg.Output.Directory)

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Audio.QueueDepth < 0 {
		return nil, fmt.Errorf("audio.queue_depth must not be negative")
	}
	return cfg, nil
}

// DefaultPath is where Load looks without an explicit --config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "quillrec", "config.yaml")
}

func defaultRecordingsDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	return filepath.Join(base, "quillrec", "recordings")
}
