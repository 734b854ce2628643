// Package config loads gocalipers settings from flags, environment and an
// optional .calipers.yaml file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/philipparndt/gocalipers/internal/session"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = ".calipers"
	envPrefix  = "CALIPERS"
)

// Config holds all runtime settings
type Config struct {
	LogLevel string
	Prompt   PromptConfig
	Window   WindowConfig
	Watch    WatchConfig
}

// PromptConfig configures the calibration prompt
type PromptConfig struct {
	Message string
	Default string
}

// WindowConfig configures the overlay window
type WindowConfig struct {
	Width      float32
	Height     float32
	Fullscreen bool
}

// WatchConfig configures backdrop reloading
type WatchConfig struct {
	Debounce time.Duration
}

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"width":      "window.width",
	"height":     "window.height",
	"fullscreen": "window.fullscreen",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("prompt.message", session.DefaultPromptMessage)
	v.SetDefault("prompt.default", session.DefaultPromptText)
	v.SetDefault("window.width", 1200)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("watch.debounce", 500*time.Millisecond)
}

// Load reads configuration. An explicit file must exist; otherwise
// .calipers.yaml is looked up in the working directory and $HOME and
// may be absent. Flags that were set on the command line win.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName(configName) // .yaml is implicit
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		LogLevel: v.GetString("log.level"),
		Prompt: PromptConfig{
			Message: v.GetString("prompt.message"),
			Default: v.GetString("prompt.default"),
		},
		Window: WindowConfig{
			Width:      float32(v.GetFloat64("window.width")),
			Height:     float32(v.GetFloat64("window.height")),
			Fullscreen: v.GetBool("window.fullscreen"),
		},
		Watch: WatchConfig{
			Debounce: v.GetDuration("watch.debounce"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("invalid watch debounce %v", c.Watch.Debounce)
	}
	return nil
}

// SessionOptions converts the prompt settings for a session
func (c *Config) SessionOptions(logger *slog.Logger) session.Options {
	return session.Options{
		PromptMessage: c.Prompt.Message,
		PromptDefault: c.Prompt.Default,
		Logger:        logger,
	}
}

// ParseLevel converts a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// NewLogger builds a text logger writing to w at the configured level
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
