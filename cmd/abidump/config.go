package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Config is the abidump configuration. Values come from defaults, an
// optional config file and ABIDUMP_* environment variables, in increasing
// priority. Command line flags override all of them.
type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	Color    string      `mapstructure:"color"`
	Manifest string      `mapstructure:"manifest"`
	Guest    GuestConfig `mapstructure:"guest"`
}

// GuestConfig configures the loopback guest used by roundtrip.
type GuestConfig struct {
	// Linear memory size in 64 KiB pages.
	MemoryPages uint32 `mapstructure:"memory_pages"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("color", "auto")
	v.SetDefault("manifest", "")
	v.SetDefault("guest.memory_pages", 1)

	v.SetEnvPrefix("ABIDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated and ranged settings.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color: must be one of auto, always, never, got %q", c.Color)
	}
	if c.Guest.MemoryPages == 0 || c.Guest.MemoryPages > 65536 {
		return fmt.Errorf("guest.memory_pages: must be between 1 and 65536, got %d", c.Guest.MemoryPages)
	}
	return nil
}

// UseColor resolves the color setting against the output file.
func (c *Config) UseColor(out *os.File) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isTerminal(out)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
