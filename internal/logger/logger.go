// Package logger builds the logr.Logger used by the command line tool.
package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// VerbosityEnvVar overrides the configured verbosity when set.
const VerbosityEnvVar = "PROVISIONING_MAPPER_VERBOSITY"

// MaxVerbosity is the highest verbosity zap levels can express. Larger values
// are clamped.
const MaxVerbosity = 127

// Config configures the logger.
type Config struct {
	// Verbosity enables V(n) logs for n <= Verbosity.
	Verbosity int
	// Development adds timestamps, callers and stack traces on errors.
	Development bool
}

var cliEncoderConfig = zapcore.EncoderConfig{
	TimeKey:        "",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "",
	MessageKey:     "msg",
	StacktraceKey:  "",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

var developmentEncoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// New creates a console logger writing to w. The verbosity maps to negative
// zap levels, so V(2) logs at zap level -2.
func New(w io.Writer, cfg Config) (logr.Logger, error) {
	verbosity, err := effectiveVerbosity(cfg.Verbosity)
	if err != nil {
		return logr.Logger{}, err
	}

	encoderConfig := cliEncoderConfig
	opts := []zap.Option{}

	if cfg.Development {
		encoderConfig = developmentEncoderConfig
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel), zap.Development())
	}

	level := zap.NewAtomicLevelAt(zapcore.Level(int8(-verbosity)))
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)

	return zapr.NewLogger(zap.New(core, opts...)), nil
}

func effectiveVerbosity(configured int) (int, error) {
	v := configured

	if env := os.Getenv(VerbosityEnvVar); env != "" {
		var err error

		v, err = strconv.Atoi(env)
		if err != nil {
			return 0, fmt.Errorf("unable to convert %s %q to int: %w", VerbosityEnvVar, env, err)
		}

		if v < 0 {
			return 0, fmt.Errorf("%s must not be negative, got %d", VerbosityEnvVar, v)
		}
	}

	if v < 0 {
		return 0, fmt.Errorf("verbosity must not be negative, got %d", v)
	}

	return min(v, MaxVerbosity), nil
}
