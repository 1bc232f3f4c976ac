// Command dayboard is a terminal daily planner: todos per day, quick
// notes, an activity heatmap and a pomodoro work mode.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/app"
	"github.com/nhle/dayboard/internal/logging"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/pomodoro"
	"github.com/nhle/dayboard/internal/schedule"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/store"
)

type options struct {
	configPath string
	dataDir    string
	dbPath     string
	logLevel   string
	logStderr  bool
	initConfig bool
}

func parseFlags() options {
	var o options
	flag.StringVarP(&o.configPath, "config", "c", model.DefaultConfigPath(), "path to config.yaml")
	flag.StringVar(&o.dataDir, "data-dir", "", "directory for the database and logs")
	flag.StringVar(&o.dbPath, "db", "", "database file (relative to the data dir unless absolute)")
	flag.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	flag.BoolVar(&o.logStderr, "log-stderr", false, "log to stderr instead of the log file")
	flag.BoolVar(&o.initConfig, "init-config", false, "write the effective config to --config and exit")
	flag.Parse()
	return o
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dayboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Best effort; real environment variables still apply without a .env.
	_ = godotenv.Load()

	opts := parseFlags()

	cfg, err := model.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, opts)

	if opts.initConfig {
		if err := model.SaveConfig(opts.configPath, cfg); err != nil {
			return err
		}
		fmt.Println("wrote", opts.configPath)
		return nil
	}

	logger, closeLog, err := newLogger(cfg, opts)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	st, err := store.NewSQLiteStore(cfg.DatabasePath())
	if err != nil {
		logger.Error("opening store", zap.String("path", cfg.DatabasePath()), zap.Error(err))
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()
	logger.Info("store ready", zap.String("path", st.Path()))

	svc := service.New(st, logger, service.WithWindows(service.WindowsFromConfig(cfg.Insight)))

	sched, err := schedule.New(logger, cfg.Schedule.ReminderSpec, time.Local)
	if err != nil {
		return err
	}
	timer := pomodoro.NewTimer(pomodoro.SettingsFromConfig(cfg.Pomodoro), time.Now)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopped := make(chan struct{})
	go func() {
		sched.Wait(ctx)
		close(stopped)
	}()

	p := tea.NewProgram(app.New(svc, sched, timer, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	// Cancelling releases Wait, which stops the scheduler and waits for a
	// job that is mid-run.
	stop()
	<-stopped

	if runErr != nil && errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		logger.Info("interrupted")
		runErr = nil
	}
	if runErr != nil {
		logger.Error("ui exited", zap.Error(runErr))
		return fmt.Errorf("running ui: %w", runErr)
	}
	logger.Info("shutdown complete")
	return nil
}

func applyFlags(cfg *model.AppConfig, opts options) {
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.dbPath != "" {
		cfg.Database = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
}

func newLogger(cfg *model.AppConfig, opts options) (*zap.Logger, func() error, error) {
	if opts.logStderr {
		logger := logging.NewWriter(cfg.Log, os.Stderr)
		return logger, logger.Sync, nil
	}
	return logging.New(cfg.Log, cfg.LogDir())
}
