package logger

import (
	"gitlab.com/skillsnap.net/internal/adapter/logging"
	"gitlab.com/skillsnap.net/internal/config"
)

var Logger = logging.NewZapLogger()

// Configure replaces the process-wide logger once configuration is loaded
func Configure(cfg *config.LogConfig) {
	Logger = logging.NewZapLoggerWithConfig(cfg)
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
