// Package common provides shared constants, types, and utilities
// used across the gpg-manager application.
package common

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// zerologLevel maps the level onto its zerolog counterpart.
func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLogLevel converts a level name ("debug", "info", ...) into a LogLevel.
// Unknown names fall back to LevelInfo.
func ParseLogLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// AppLogger writes leveled messages through zerolog. The console gets
// "time [LEVEL] caller > message" lines and the optional log file gets one
// JSON object per line.
type AppLogger struct {
	mu     sync.Mutex
	level  LogLevel
	logger zerolog.Logger
	file   *rotatingFile

	maxFileSize int64
	maxBackups  int
}

// LogConfig holds configuration options for the logger.
type LogConfig struct {
	Level       LogLevel
	EnableFile  bool
	MaxFileSize int64 // bytes before the file is rotated
	MaxBackups  int   // gzipped backups kept next to the file
}

var (
	defaultLogger *AppLogger
	loggerOnce    sync.Once
)

const (
	defaultMaxFileSize = 5 * 1024 * 1024
	defaultMaxBackups  = 5

	consoleTimeFormat = "2006/01/02 15:04:05"
	backupTimeFormat  = "20060102-150405.000"
)

// newConsoleWriter renders events as "time [LEVEL] caller > message".
func newConsoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: consoleTimeFormat,
		FormatLevel: func(i interface{}) string {
			return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
		},
	}
}

func newZerolog(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// GetLogger returns the process-wide logger, writing to stdout until
// InitLogger or SetOutput says otherwise.
func GetLogger() *AppLogger {
	loggerOnce.Do(func() {
		defaultLogger = &AppLogger{
			level:       LevelInfo,
			logger:      newZerolog(newConsoleWriter(os.Stdout)),
			maxFileSize: defaultMaxFileSize,
			maxBackups:  defaultMaxBackups,
		}
	})
	return defaultLogger
}

// InitLogger applies config to the default logger.
func InitLogger(config LogConfig) error {
	logger := GetLogger()
	logger.SetLevel(config.Level)

	logger.mu.Lock()
	if config.MaxFileSize > 0 {
		logger.maxFileSize = config.MaxFileSize
	}
	if config.MaxBackups > 0 {
		logger.maxBackups = config.MaxBackups
	}
	logger.mu.Unlock()

	if !config.EnableFile {
		return nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return logger.OpenFile(filepath.Join(dir, "logs", LogFileName))
}

// SetLevel sets the minimum log level.
func (l *AppLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sends console output to w and stops file logging.
func (l *AppLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeFile()
	l.logger = newZerolog(newConsoleWriter(w))
}

// OpenFile logs to path as well as stdout. The file is rotated into a
// gzipped backup once it grows past the configured size.
func (l *AppLogger) OpenFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := &rotatingFile{path: path, maxSize: l.maxFileSize, maxBackups: l.maxBackups}
	if err := f.open(); err != nil {
		return err
	}

	l.closeFile()
	l.file = f
	l.logger = newZerolog(zerolog.MultiLevelWriter(newConsoleWriter(os.Stdout), f))
	return nil
}

func (l *AppLogger) closeFile() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Close closes the log file, if any.
func (l *AppLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeFile()
}

// CloseLogger closes the default logger.
func CloseLogger() error {
	return GetLogger().Close()
}

func (l *AppLogger) log(level LogLevel, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.WithLevel(level.zerologLevel()).Str(zerolog.CallerFieldName, caller).Msg(msg)
}

func (l *AppLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *AppLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *AppLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *AppLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

// LogDebug logs to the default logger.
func LogDebug(msg string, args ...interface{}) { GetLogger().log(LevelDebug, msg, args...) }

// LogInfo logs to the default logger.
func LogInfo(msg string, args ...interface{}) { GetLogger().log(LevelInfo, msg, args...) }

// LogWarn logs to the default logger.
func LogWarn(msg string, args ...interface{}) { GetLogger().log(LevelWarn, msg, args...) }

// LogError logs to the default logger.
func LogError(msg string, args ...interface{}) { GetLogger().log(LevelError, msg, args...) }

// rotatingFile is an append-only log file that moves itself aside into
// path.<time>.gz when a write would take it past maxSize.
type rotatingFile struct {
	path       string
	maxSize    int64
	maxBackups int

	f    *os.File
	size int64
}

func (r *rotatingFile) open() error {
	dir := filepath.Dir(r.path)
	for _, p := range []string{dir, r.path} {
		if info, err := os.Lstat(p); err == nil && info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("refusing to log through symlink %s", p)
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	r.f, r.size = f, info.Size()

	if r.size >= r.maxSize {
		return r.rotate()
	}
	return nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	if r.f == nil {
		return 0, os.ErrClosed
	}
	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

// rotate compresses the current file into a backup, prunes old backups
// and starts a new empty file.
func (r *rotatingFile) rotate() error {
	if err := r.f.Close(); err != nil {
		return err
	}
	r.f = nil

	backup := r.path + "." + time.Now().Format(backupTimeFormat) + ".gz"
	if err := gzipFile(r.path, backup); err != nil {
		return err
	}
	if err := os.Remove(r.path); err != nil {
		return err
	}
	r.prune()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	r.f, r.size = f, 0
	return nil
}

// prune keeps the newest maxBackups backups. Backup names embed a sortable
// timestamp, so name order is age order.
func (r *rotatingFile) prune() {
	backups, err := filepath.Glob(r.path + ".*.gz")
	if err != nil || len(backups) <= r.maxBackups {
		return
	}
	sort.Strings(backups)
	for _, old := range backups[:len(backups)-r.maxBackups] {
		os.Remove(old)
	}
}

func (r *rotatingFile) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

func gzipFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, out.Close()) }()

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		return err
	}
	return zw.Close()
}
