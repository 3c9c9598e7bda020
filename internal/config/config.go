package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level flowtrack configuration.
type Config struct {
	DBPath    string    `mapstructure:"db_path"`
	UserID    int64     `mapstructure:"user_id"`
	Intervals Intervals `mapstructure:"intervals"`
	Output    Output    `mapstructure:"output"`
}

// Intervals defines the timer durations used when a user has no stored
// preferences. Durations are seconds.
type Intervals struct {
	WorkDuration           int `mapstructure:"work_duration"`
	ShortBreakDuration     int `mapstructure:"short_break_duration"`
	LongBreakDuration      int `mapstructure:"long_break_duration"`
	SessionsUntilLongBreak int `mapstructure:"sessions_until_long_break"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("db_path", DBPath())
	v.SetDefault("user_id", DefaultUserID)
	v.SetDefault("intervals.work_duration", DefaultIntervals.WorkDuration)
	v.SetDefault("intervals.short_break_duration", DefaultIntervals.ShortBreakDuration)
	v.SetDefault("intervals.long_break_duration", DefaultIntervals.LongBreakDuration)
	v.SetDefault("intervals.sessions_until_long_break", DefaultIntervals.SessionsUntilLongBreak)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	return &cfg, nil
}

// DBPath returns the default full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
