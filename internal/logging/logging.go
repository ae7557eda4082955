// Package logging builds the zap logger, optionally teeing into a rotating log file
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls where and how verbosely the logger writes
type LogConfig struct {
	LogFile    string // Log file path, empty logs to stderr only
	MaxSize    int    // Max size in megabytes
	MaxBackups int    // Max number of backups
	MaxAge     int    // Max age in days
	Compress   bool   // Compress backups
	Verbose    bool   // Log at debug level
}

// DefaultLogConfig logs to twospace.log in dataDir, or to stderr only when dataDir is empty
func DefaultLogConfig(dataDir string) LogConfig {
	logFile := ""
	if dataDir != "" {
		logFile = filepath.Join(dataDir, "twospace.log")
	}

	return LogConfig{
		LogFile:    logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
}

// SetupLogging returns a logger writing human readable lines to stderr and, when a log file is
// configured, JSON lines to a lumberjack rotated file
func SetupLogging(config LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if config.Verbose {
		level = zapcore.DebugLevel
	}

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	if config.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.LogFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotator := &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}

		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
