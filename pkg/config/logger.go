package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "swap-status"

// NewLogger builds the service logger. Entries are never sampled, so every line of a check is kept.
// Stack traces are attached from error level up.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	sink, isFile, err := openLogSink(cfg.OutputPath)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newLogEncoder(cfg.Format, isFile), sink, zap.NewAtomicLevelAt(level))
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.Fields(zap.String("app", appName)),
	), nil
}

func newLogEncoder(format string, isFile bool) zapcore.Encoder {
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == "console" {
		// Colour codes only make sense on a terminal stream.
		if isFile {
			enc.EncodeLevel = zapcore.CapitalLevelEncoder
		} else {
			enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(enc)
	}
	return zapcore.NewJSONEncoder(enc)
}

// openLogSink resolves output_path. The CLI writes logs to stderr so stdout carries only the report.
func openLogSink(path string) (zapcore.WriteSyncer, bool, error) {
	switch path {
	case "", "stdout":
		return zapcore.Lock(os.Stdout), false, nil
	case "stderr":
		return zapcore.Lock(os.Stderr), false, nil
	}
	sink, _, err := zap.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open log output %s: %w", path, err)
	}
	return sink, true, nil
}
