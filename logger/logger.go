package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field.
type Field = zap.Field

var (
	String  = zap.String
	Int     = zap.Int
	Float64 = zap.Float64
	Bool    = zap.Bool
	Err     = zap.Error
	Any     = zap.Any
)

// Logger is the small logging surface used throughout the codebase.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// zapLogger implements Logger using a SugaredLogger internally.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.sugar.Infow(msg, sugarArgs(fields)...)
}
func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.sugar.Warnw(msg, sugarArgs(fields)...)
}
func (l *zapLogger) Error(msg string, fields ...Field) {
	l.sugar.Errorw(msg, sugarArgs(fields)...)
}

// Sync flushes buffered entries.
func (l *zapLogger) Sync() error { return l.sugar.Sync() }

// NewZapLogger creates a production logger (JSON encoding, level INFO).
func NewZapLogger() (Logger, error) {
	return New("info", "json")
}

// New builds a zap logger with the given level ("debug", "info", ...) and
// encoding ("json" or "console").
func New(level, encoding string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if encoding == "" {
		encoding = "json"
	}
	cfg.Encoding = encoding
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: z.Sugar()}, nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

// sugarArgs passes typed fields through to the SugaredLogger.
func sugarArgs(fields []Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f)
	}
	return out
}
