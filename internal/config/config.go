package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
)

// Config is the top-level gymdesk configuration.
type Config struct {
	DataDir     string      `mapstructure:"data_dir"`
	DBPath      string      `mapstructure:"db_path"`
	Role        string      `mapstructure:"role"`
	Seed        uint64      `mapstructure:"seed"`
	TimeOfDay   TimeOfDay   `mapstructure:"time_of_day"`
	Budget      Budget      `mapstructure:"budget"`
	Leaderboard Leaderboard `mapstructure:"leaderboard"`
	Insights    Insights    `mapstructure:"insights"`
	Output      Output      `mapstructure:"output"`
	Log         Log         `mapstructure:"log"`
}

// TimeOfDay sets where the morning and afternoon end, as HH:MM.
type TimeOfDay struct {
	MorningEnd   string `mapstructure:"morning_end"`
	AfternoonEnd string `mapstructure:"afternoon_end"`
}

// Budget defines budget alert thresholds.
type Budget struct {
	// WarnAt is the spend percentage at which a category is flagged as
	// nearing its budget.
	WarnAt float64 `mapstructure:"warn_at"`
}

// Leaderboard defines trainer leaderboard preferences.
type Leaderboard struct {
	Top int `mapstructure:"top"`
}

// Insights defines thresholds for dashboard insight rules.
type Insights struct {
	LowAttendance float64 `mapstructure:"low_attendance"`
	LowConversion float64 `mapstructure:"low_conversion"`
	RankDrop      int     `mapstructure:"rank_drop"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
}

// Log defines logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
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
// and returns a Config with all defaults applied. GYMDESK_* environment
// variables override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("role", DefaultRole)
	v.SetDefault("seed", DefaultSeed)
	v.SetDefault("time_of_day.morning_end", DefaultTimeOfDay.MorningEnd)
	v.SetDefault("time_of_day.afternoon_end", DefaultTimeOfDay.AfternoonEnd)
	v.SetDefault("budget.warn_at", DefaultBudget.WarnAt)
	v.SetDefault("leaderboard.top", DefaultLeaderboard.Top)
	v.SetDefault("insights.low_attendance", DefaultInsights.LowAttendance)
	v.SetDefault("insights.low_conversion", DefaultInsights.LowConversion)
	v.SetDefault("insights.rank_drop", DefaultInsights.RankDrop)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.DBPath = expandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be checked by type alone.
func (c *Config) Validate() error {
	if _, err := c.DayParts(); err != nil {
		return err
	}
	if _, err := model.ParseRole(c.Role); err != nil {
		return fmt.Errorf("role: %w", err)
	}
	if c.Budget.WarnAt <= 0 || c.Budget.WarnAt > 100 {
		return fmt.Errorf("budget.warn_at must be in (0, 100], got %v", c.Budget.WarnAt)
	}
	return nil
}

// DayParts parses the configured time-of-day boundaries.
func (c *Config) DayParts() (facet.DayParts, error) {
	morning, err := model.ParseClock(c.TimeOfDay.MorningEnd)
	if err != nil {
		return facet.DayParts{}, fmt.Errorf("time_of_day.morning_end: %w", err)
	}
	afternoon, err := model.ParseClock(c.TimeOfDay.AfternoonEnd)
	if err != nil {
		return facet.DayParts{}, fmt.Errorf("time_of_day.afternoon_end: %w", err)
	}
	if morning >= afternoon {
		return facet.DayParts{}, fmt.Errorf("time_of_day: morning_end %s must be before afternoon_end %s", morning, afternoon)
	}
	return facet.DayParts{MorningEnd: morning, AfternoonEnd: afternoon}, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
