// Package logging builds the application's zap logger. The terminal is
// owned by the UI, so logs go to a daily-rotated file under the data dir.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nhle/dayboard/internal/model"
)

// fileName is the strftime pattern for rotated log files.
const fileName = "dayboard.%Y%m%d.log"

// LevelFromString maps a config level name to a zap level; unknown names
// fall back to info.
func LevelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a logger writing to dir. The returned closer flushes the
// logger and releases the file; call it on shutdown.
func New(cfg model.LogConfig, dir string) (*zap.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	maxAge := time.Duration(max(1, cfg.MaxAgeDays)) * 24 * time.Hour
	rotator, err := rotatelogs.New(
		filepath.Join(dir, fileName),
		rotatelogs.WithLinkName(filepath.Join(dir, "dayboard.log")),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := build(cfg, zapcore.AddSync(rotator))
	closer := func() error {
		_ = logger.Sync()
		return rotator.Close()
	}
	return logger, closer, nil
}

// NewWriter returns a logger writing to w, used by tests and by --log-stderr.
func NewWriter(cfg model.LogConfig, w io.Writer) *zap.Logger {
	return build(cfg, zapcore.AddSync(w))
}

func build(cfg model.LogConfig, ws zapcore.WriteSyncer) *zap.Logger {
	lvl := LevelFromString(cfg.Level)

	var encoder zapcore.Encoder
	if cfg.Dev {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, ws, lvl)
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	return zap.New(core, opts...)
}
