package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Check-in policies.
const (
	PolicyAppend    = "append"
	PolicyOnePerDay = "one-per-day"
)

// UserConfig identifies the local user.
type UserConfig struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// TrendConfig controls trend aggregation.
type TrendConfig struct {
	Window int `mapstructure:"window"`
	Days   int `mapstructure:"days"`
}

// CheckinConfig controls check-in recording.
type CheckinConfig struct {
	Policy string `mapstructure:"policy"`
}

// SentimentConfig controls the sentiment analyzer.
type SentimentConfig struct {
	Latency time.Duration `mapstructure:"latency"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ThemeConfig selects a color preset and optional overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// ShellConfig holds shell integration configuration.
type ShellConfig struct {
	CacheTTL    string `mapstructure:"cache_ttl"`
	TodayIcon   string `mapstructure:"today_icon"`
	NoTodayIcon string `mapstructure:"no_today_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
	ShowMood    bool   `mapstructure:"show_mood"`
	ShowBackend bool   `mapstructure:"show_backend"`
}

// Config holds the application configuration.
type Config struct {
	Storage   string          `mapstructure:"storage"`
	DataDir   string          `mapstructure:"data_dir"`
	Editor    string          `mapstructure:"editor"`
	User      UserConfig      `mapstructure:"user"`
	Trend     TrendConfig     `mapstructure:"trend"`
	Checkin   CheckinConfig   `mapstructure:"checkin"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Log       LogConfig       `mapstructure:"log"`
	Serve     ServeConfig     `mapstructure:"serve"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Shell     ShellConfig     `mapstructure:"shell"`
}

// DefaultDataDir returns the default data directory (~/.wellnessctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wellnessctl")
	}
	return filepath.Join(home, ".wellnessctl")
}

func defaultUserID() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("editor", "")
	v.SetDefault("user.id", defaultUserID())
	v.SetDefault("user.name", "")
	v.SetDefault("user.email", "")
	v.SetDefault("trend.window", 7)
	v.SetDefault("trend.days", 30)
	v.SetDefault("checkin.policy", PolicyAppend)
	v.SetDefault("sentiment.latency", "0s")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.allowed_origins", []string{"*"})
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.today_icon", "✓")
	v.SetDefault("shell.no_today_icon", "✗")
	v.SetDefault("shell.streak_icon", "🔥")
	v.SetDefault("shell.show_mood", true)
	v.SetDefault("shell.show_backend", false)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "wellnessctl"))
		}
		v.AddConfigPath(filepath.Join(DefaultDataDir()))
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: WELLNESSCTL_STORAGE, WELLNESSCTL_DATA_DIR, etc.
	v.SetEnvPrefix("WELLNESSCTL")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the rest of the application cannot honor.
func (c *Config) Validate() error {
	switch c.Storage {
	case "markdown", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q (want markdown or sqlite)", c.Storage)
	}
	switch c.Checkin.Policy {
	case PolicyAppend, PolicyOnePerDay:
	default:
		return fmt.Errorf("unknown checkin.policy %q (want %s or %s)", c.Checkin.Policy, PolicyAppend, PolicyOnePerDay)
	}
	if c.Trend.Window < 1 {
		return fmt.Errorf("trend.window must be at least 1, got %d", c.Trend.Window)
	}
	if c.Trend.Days < 1 {
		return fmt.Errorf("trend.days must be at least 1, got %d", c.Trend.Days)
	}
	if c.Sentiment.Latency < 0 {
		return fmt.Errorf("sentiment.latency must not be negative")
	}
	return nil
}
