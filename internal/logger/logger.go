package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// Debug level for detailed troubleshooting
	Debug LogLevel = iota
	// Info level for general operational entries
	Info
	// Warn level for non-critical issues
	Warn
	// Error level for errors that need attention
	Error
)

var levelNames = map[LogLevel]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Config holds logger configuration
type Config struct {
	// Level sets the minimum level to log
	Level LogLevel
	// File is the path to the log file. If empty, log output is discarded:
	// the terminal is owned by the UI while a session runs.
	File string
	// MaxSizeMB is the size in megabytes at which the file is rotated
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep
	MaxBackups int
}

// Logger writes leveled, timestamped lines to a single destination.
type Logger struct {
	out   *log.Logger
	level LogLevel
	mu    sync.Mutex
	file  io.Closer
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(io.Discard, Info)
)

// New creates a logger writing to w.
func New(w io.Writer, level LogLevel) *Logger {
	return &Logger{
		out:   log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		level: level,
	}
}

// NewFromConfig creates a logger from cfg, rotating the file with lumberjack.
func NewFromConfig(cfg Config) *Logger {
	if cfg.File == "" {
		return New(io.Discard, cfg.Level)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	l := New(rotator, cfg.Level)
	l.file = rotator
	return l
}

// Initialize replaces the package-level logger. The previous one is closed.
func Initialize(cfg Config) {
	l := NewFromConfig(cfg)

	defaultMu.Lock()
	prev := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()

	prev.Close()
}

// GetLogger returns the package-level logger. It discards output until Initialize is called.
func GetLogger() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Close properly closes the logger's file handle if one exists
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) logf(level LogLevel, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	l.out.Printf(level.String()+": "+format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) { l.logf(Debug, format, v...) }

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) { l.logf(Info, format, v...) }

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) { l.logf(Warn, format, v...) }

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) { l.logf(Error, format, v...) }

// Debugf logs through the package-level logger.
func Debugf(format string, v ...interface{}) { GetLogger().Debug(format, v...) }

// Infof logs through the package-level logger.
func Infof(format string, v ...interface{}) { GetLogger().Info(format, v...) }

// Warnf logs through the package-level logger.
func Warnf(format string, v ...interface{}) { GetLogger().Warn(format, v...) }

// Errorf logs through the package-level logger.
func Errorf(format string, v ...interface{}) { GetLogger().Error(format, v...) }

// ParseLogLevel converts a string level to LogLevel
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Info, fmt.Errorf("unknown log level: %s", level)
	}
}
