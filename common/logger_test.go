package common

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppLogger_SetLevel(t *testing.T) {
	logger := &AppLogger{
		level: LevelInfo,
	}

	logger.SetLevel(LevelDebug)
	if logger.level != LevelDebug {
		t.Errorf("SetLevel did not update level, got %v, want %v", logger.level, LevelDebug)
	}
}

func TestAppLogger_LogFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := &AppLogger{
		level: LevelWarn,
	}
	logger.SetOutput(&buf)

	// Debug and Info should be filtered
	logger.Debug("debug message")
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is Warn")
	}

	// Warn and Error should pass
	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "WARN") {
		t.Error("Warn message should be logged")
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Error("Error message should be logged")
	}
}

func TestAppLogger_LogFormatting(t *testing.T) {
	var buf bytes.Buffer

	logger := &AppLogger{
		level: LevelDebug,
	}
	logger.SetOutput(&buf)

	logger.Info("Test message with %s", "formatting")

	output := buf.String()

	// Check timestamp format (YYYY/MM/DD)
	if !strings.Contains(output, time.Now().Format("2006/01/02")) {
		t.Error("Log should contain date in YYYY/MM/DD format")
	}

	// Check level
	if !strings.Contains(output, "[INFO]") {
		t.Error("Log should contain level indicator")
	}

	// Check message
	if !strings.Contains(output, "Test message with formatting") {
		t.Error("Log should contain formatted message")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	// Test default values
	if defaultMaxFileSize != 5*1024*1024 {
		t.Errorf("defaultMaxFileSize = %v, want 5MB", defaultMaxFileSize)
	}

	if defaultMaxBackups != 5 {
		t.Errorf("defaultMaxBackups = %v, want 5", defaultMaxBackups)
	}
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if dir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should end with gpg-manager
	if !strings.HasSuffix(dir, ConfigDirName) {
		t.Errorf("GetConfigDir() = %v, should end with %v", dir, ConfigDirName)
	}
}

func TestFileExists(t *testing.T) {
	// Test with existing file
	tempFile, err := os.CreateTemp("", "test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	if !FileExists(tempFile.Name()) {
		t.Error("FileExists() should return true for existing file")
	}

	// Test with non-existing file
	if FileExists("/nonexistent/path/to/file") {
		t.Error("FileExists() should return false for non-existing file")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.name); got != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestIndexOf(t *testing.T) {
	slice := []string{"a", "b", "c", "b"}

	if got := IndexOf(slice, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %v, want 1", got)
	}

	if got := IndexOf(slice, "d"); got != -1 {
		t.Errorf("IndexOf(d) = %v, want -1", got)
	}

	if got := IndexOf(nil, "a"); got != -1 {
		t.Errorf("IndexOf(nil) = %v, want -1", got)
	}
}

func TestWrapError(t *testing.T) {
	originalErr := ErrSettingsSave
	wrapped := WrapError(originalErr, "additional context")

	if wrapped == nil {
		t.Error("WrapError should return non-nil error")
	}

	if !strings.Contains(wrapped.Error(), "additional context") {
		t.Error("WrapError should include additional context")
	}

	if !strings.Contains(wrapped.Error(), originalErr.Error()) {
		t.Error("WrapError should include original error message")
	}

	if !errors.Is(wrapped, ErrSettingsSave) {
		t.Error("WrapError should keep the wrapped error reachable via errors.Is")
	}

	// Test with nil error
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestRotatingFile_RotatesOnOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 1024)), 0600); err != nil {
		t.Fatal(err)
	}

	f := &rotatingFile{path: path, maxSize: 512, maxBackups: 2}
	if err := f.open(); err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if info, err := os.Stat(path); err != nil || info.Size() != 0 {
		t.Errorf("log file should start empty after rotation, stat = %v, %v", info, err)
	}
	backups, _ := filepath.Glob(path + ".*.gz")
	if len(backups) != 1 {
		t.Fatalf("backups = %v, want one", backups)
	}

	gz, err := os.Open(backups[0])
	if err != nil {
		t.Fatal(err)
	}
	defer gz.Close()
	zr, err := gzip.NewReader(gz)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 1024 {
		t.Errorf("backup holds %d bytes, want 1024", len(data))
	}
}

func TestRotatingFile_PrunesBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	f := &rotatingFile{path: path, maxSize: 100, maxBackups: 2}
	if err := f.open(); err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	line := []byte(strings.Repeat("y", 80) + "\n")
	for i := 0; i < 5; i++ {
		if _, err := f.Write(line); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		// Backup names carry millisecond timestamps.
		time.Sleep(2 * time.Millisecond)
	}

	backups, _ := filepath.Glob(path + ".*.gz")
	if len(backups) != 2 {
		t.Errorf("backups = %v, want 2", backups)
	}
	if info, err := os.Stat(path); err != nil || info.Size() != int64(len(line)) {
		t.Errorf("current file should hold one line, stat = %v, %v", info, err)
	}
}

func TestAppLogger_OpenFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger := &AppLogger{level: LevelInfo, maxFileSize: defaultMaxFileSize, maxBackups: 1}

	if err := logger.OpenFile(path); err != nil {
		t.Fatal(err)
	}
	logger.Warn("key database %s missing", "/tmp/keydb")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, "key database /tmp/keydb missing") {
		t.Errorf("log file = %q", out)
	}
}

func TestAppLogger_OpenFileRefusesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "elsewhere.log")
	if err := os.WriteFile(target, nil, 0600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "app.log")
	if err := os.Symlink(target, link); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	logger := &AppLogger{level: LevelInfo, maxFileSize: defaultMaxFileSize, maxBackups: 1}
	if err := logger.OpenFile(link); err == nil {
		logger.Close()
		t.Error("OpenFile() should refuse a symlinked log file")
	}
}
