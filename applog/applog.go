// Package applog provides general-purpose application logging.
//
// Logs are JSON lines appended to ~/.ragask/logs/app.log (or the configured
// file). Nothing is written to the terminal, which belongs to the TUI.
package applog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DachengChen/ragask/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a zap logger bound to a log file.
type Logger struct {
	*zap.Logger
	file *os.File
}

// Open creates the log directory if needed and opens the log file for
// appending.
func Open(cfg config.LogConfig) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.File == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	core := zapcore.NewCore(newEncoder(), zapcore.AddSync(f), level)
	return &Logger{Logger: zap.New(core), file: f}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Event logs an info entry tagged with a category such as "startup" or
// "query".
func (l *Logger) Event(category, msg string, fields ...zap.Field) {
	l.Logger.Info(msg, append([]zap.Field{zap.String("category", category)}, fields...)...)
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func newEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderCfg)
}
