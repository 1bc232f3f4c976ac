package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// appName names the config and data directories.
const appName = "dayboard"

// LogConfig controls the file logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// Dev switches to the human-readable console encoder.
	Dev bool `mapstructure:"dev" yaml:"dev"`

	// MaxAgeDays is how long rotated log files are kept.
	MaxAgeDays int `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// PomodoroConfig holds the work-mode timer lengths.
type PomodoroConfig struct {
	WorkMinutes       int  `mapstructure:"work_minutes" yaml:"work_minutes"`
	ShortBreakMinutes int  `mapstructure:"short_break_minutes" yaml:"short_break_minutes"`
	LongBreakMinutes  int  `mapstructure:"long_break_minutes" yaml:"long_break_minutes"`
	LongBreakInterval int  `mapstructure:"long_break_interval" yaml:"long_break_interval"`
	AutoStartBreaks   bool `mapstructure:"auto_start_breaks" yaml:"auto_start_breaks"`
	AutoStartWork     bool `mapstructure:"auto_start_work" yaml:"auto_start_work"`
}

// InsightConfig holds the dashboard windows, in days.
type InsightConfig struct {
	ImportantDays int `mapstructure:"important_days" yaml:"important_days"`
	OverdueDays   int `mapstructure:"overdue_days" yaml:"overdue_days"`
	LookbackDays  int `mapstructure:"lookback_days" yaml:"lookback_days"`
}

// ScheduleConfig holds cron specs for background jobs.
type ScheduleConfig struct {
	ReminderSpec string `mapstructure:"reminder_spec" yaml:"reminder_spec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	DataDir  string         `mapstructure:"data_dir" yaml:"data_dir"`
	Database string         `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Pomodoro PomodoroConfig `mapstructure:"pomodoro" yaml:"pomodoro"`
	Insight  InsightConfig  `mapstructure:"insight" yaml:"insight"`
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule"`
}

// DatabasePath returns the absolute path of the database file.
func (c *AppConfig) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.DataDir, c.Database)
}

// LogDir returns the directory rotated log files are written to.
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DefaultDataDir returns the platform application-data directory,
// e.g. ~/.config/dayboard on Linux.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", appName)
	}
	return filepath.Join(dir, appName)
}

// DefaultConfigPath returns the default path for the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		DataDir:  DefaultDataDir(),
		Database: "app.db",
		Log: LogConfig{
			Level:      "info",
			MaxAgeDays: 14,
		},
		Pomodoro: PomodoroConfig{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			LongBreakInterval: 4,
		},
		Insight: InsightConfig{
			ImportantDays: 3,
			OverdueDays:   7,
			LookbackDays:  365,
		},
		Schedule: ScheduleConfig{
			ReminderSpec: "0 9 * * *",
		},
	}
}

// settings flattens the config into dotted viper keys.
func (c *AppConfig) settings() map[string]any {
	return map[string]any{
		"data_dir":                     c.DataDir,
		"database":                     c.Database,
		"log.level":                    c.Log.Level,
		"log.dev":                      c.Log.Dev,
		"log.max_age_days":             c.Log.MaxAgeDays,
		"pomodoro.work_minutes":        c.Pomodoro.WorkMinutes,
		"pomodoro.short_break_minutes": c.Pomodoro.ShortBreakMinutes,
		"pomodoro.long_break_minutes":  c.Pomodoro.LongBreakMinutes,
		"pomodoro.long_break_interval": c.Pomodoro.LongBreakInterval,
		"pomodoro.auto_start_breaks":   c.Pomodoro.AutoStartBreaks,
		"pomodoro.auto_start_work":     c.Pomodoro.AutoStartWork,
		"insight.important_days":       c.Insight.ImportantDays,
		"insight.overdue_days":         c.Insight.OverdueDays,
		"insight.lookback_days":        c.Insight.LookbackDays,
		"schedule.reminder_spec":       c.Schedule.ReminderSpec,
	}
}

// setDefaults registers every key so missing keys resolve to sensible values
// and AutomaticEnv can see them during Unmarshal.
func setDefaults(v *viper.Viper) {
	for key, value := range DefaultAppConfig().settings() {
		v.SetDefault(key, value)
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// DAYBOARD_* environment variables override file values. If the file does
// not exist the defaults (plus environment) are used.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DAYBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the timer and dashboard cannot work with.
func (c *AppConfig) Validate() error {
	var errs []FieldError
	if c.DataDir == "" {
		errs = append(errs, FieldError{Field: "data_dir", Message: "must not be empty"})
	}
	if c.Database == "" {
		errs = append(errs, FieldError{Field: "database", Message: "must not be empty"})
	}
	if c.Pomodoro.WorkMinutes <= 0 || c.Pomodoro.ShortBreakMinutes <= 0 || c.Pomodoro.LongBreakMinutes <= 0 {
		errs = append(errs, FieldError{Field: "pomodoro", Message: "lengths must be positive"})
	}
	if c.Pomodoro.LongBreakInterval <= 0 {
		errs = append(errs, FieldError{Field: "pomodoro.long_break_interval", Message: "must be positive"})
	}
	if c.Insight.ImportantDays <= 0 || c.Insight.OverdueDays <= 0 || c.Insight.LookbackDays <= 0 {
		errs = append(errs, FieldError{Field: "insight", Message: "windows must be positive"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	for key, value := range cfg.settings() {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
