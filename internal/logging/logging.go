package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zapcore.Field

type LoggerCtxKey struct{}

// core is the part of *zap.Logger the outcome pipeline logs through.
type core interface {
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field)
	Sync() error
	With(fields ...zapcore.Field) *zap.Logger
}

type Logger struct {
	log core
}

var (
	logOnce      sync.Once
	cachedLogger *Logger
)

// SetCustomGlobalLogger installs logger as the process logger. Only the first
// logger installed, or built by New, is kept.
func SetCustomGlobalLogger(logger *zap.Logger) {
	if logger != nil {
		logOnce.Do(func() {
			cachedLogger = &Logger{log: logger}
		})
	}
}

func production() bool {
	return os.Getenv("GO_ENVIRONMENT") == "production"
}

// Config returns the zap configuration used for the process logger:
// JSON in production, colored console output otherwise.
func Config() zap.Config {
	var logCfg zap.Config
	if production() {
		logCfg = zap.NewProductionConfig()
	} else {
		logCfg = zap.NewDevelopmentConfig()
		logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	return logCfg
}

func New() *Logger {
	logOnce.Do(func() {
		logger, err := Config().Build(zap.AddCallerSkip(1))
		if err != nil {
			log.Panicf("could not create logger: %v", err)
		}
		cachedLogger = &Logger{log: logger}
	})

	return cachedLogger
}

// Wrap adapts a zap logger, with fields added to every entry, without
// touching the process logger.
func Wrap(logger *zap.Logger, fields ...Field) *Logger {
	if logger == nil {
		return New().With(fields...)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return &Logger{log: logger}
}

func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return New()
	}

	if l, ok := ctx.Value(LoggerCtxKey{}).(*Logger); ok {
		return l
	}

	return New()
}

// WithFields returns a context whose logger adds fields to the one already
// carried by ctx.
func WithFields(ctx context.Context, fields ...Field) context.Context {
	return FromContext(ctx).With(fields...).GetContext(ctx)
}

func (l Logger) Debug(msg string, fields ...Field) { l.log.Debug(msg, fields...) }
func (l Logger) Info(msg string, fields ...Field)  { l.log.Info(msg, fields...) }
func (l Logger) Warn(msg string, fields ...Field)  { l.log.Warn(msg, fields...) }
func (l Logger) Error(msg string, fields ...Field) { l.log.Error(msg, fields...) }

func (l Logger) Sync() error {
	return l.log.Sync()
}

func (l Logger) With(fields ...Field) *Logger {
	if len(fields) == 0 {
		return &l
	}

	return &Logger{log: l.log.With(fields...)}
}

func (l *Logger) GetContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, LoggerCtxKey{}, l)
}
