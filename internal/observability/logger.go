// Package observability builds the process logger. The logger is constructed
// once at startup and handed to components as an injected port; nothing in
// the automation core reaches for a global instance.
package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zizip/droid-cli/internal/config"
)

// New constructs a zap logger from the given configuration. Console output
// goes to stderr so command results on stdout stay machine-parseable; when a
// log file is configured, a JSON core with lumberjack rotation is teed in.
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	consoleCore := zapcore.NewCore(newEncoder(cfg.Format), zapcore.Lock(os.Stderr), level)
	cores := []zapcore.Core{consoleCore}

	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(newEncoder("json"), fileWriter, level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("droid-cli")
	return logger, nil
}

// Sync flushes buffered entries. Errors are ignored; syncing stderr fails
// with EINVAL on some platforms and there is nowhere left to report to.
func Sync(l *zap.Logger) {
	if l == nil {
		return
	}
	_ = l.Sync()
}

func newEncoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	if format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encCfg)
}
