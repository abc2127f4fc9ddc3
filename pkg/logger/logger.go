package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logFilePermissions = 0600
	infoLogLevel       = "info"
)

var (
	globalLogger *zap.Logger
	loggerMutex  sync.RWMutex
	once         sync.Once

	// Global settings, loaded from viper before first use.
	GlobalEnableConsoleLogger bool
	GlobalLogPath             string = ""
	GlobalLogLevel            string = infoLogLevel
)

// Logger wraps zap with the printf-style helpers the rest of the code
// uses.
type Logger struct {
	*zap.Logger
}

// InitLoggerOutputs loads logging settings from viper if present.
func InitLoggerOutputs() {
	if viper.IsSet("tutum.log_path") {
		GlobalLogPath = viper.GetString("tutum.log_path")
	}
	if viper.IsSet("tutum.log_level") {
		GlobalLogLevel = viper.GetString("tutum.log_level")
	}
	if viper.IsSet("tutum.enable_console_logger") {
		GlobalEnableConsoleLogger = viper.GetBool("tutum.enable_console_logger")
	}
}

// InitProduction builds the global logger once. Without a log path or
// console logging enabled, logging is a no-op.
func InitProduction() {
	once.Do(func() {
		if GlobalLogLevel == "" {
			GlobalLogLevel = infoLogLevel
		}
		level := zap.NewAtomicLevelAt(getZapLevel(GlobalLogLevel))

		var cores []zapcore.Core
		if GlobalEnableConsoleLogger {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewConsoleEncoder(encoderConfig()),
				zapcore.AddSync(os.Stderr),
				level,
			))
		}
		if GlobalLogPath != "" {
			if fileCore, err := createFileCore(level); err == nil {
				cores = append(cores, fileCore)
			}
		}
		if len(cores) == 0 {
			globalLogger = zap.NewNop()
			return
		}
		globalLogger = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named("tutum")
	})
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "msg"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func createFileCore(level zap.AtomicLevel) (zapcore.Core, error) {
	logFile, err := os.OpenFile(
		GlobalLogPath,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		logFilePermissions,
	)
	if err != nil {
		return nil, err
	}
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(logFile),
		level,
	), nil
}

func getZapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the global logger, initializing it on first use.
func Get() *Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if globalLogger == nil {
		InitProduction()
	}
	return &Logger{Logger: globalLogger}
}

// SetGlobalLogger swaps the global logger; used by tests.
func SetGlobalLogger(l *zap.Logger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = l
}

func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
