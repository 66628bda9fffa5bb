// Package common provides shared constants, types, and utilities
// used across the gpg-manager application.
package common

import (
	"os"
	"os/exec"
	"path/filepath"
)

// GetConfigDir returns the path to the application configuration directory.
// It creates the directory if it doesn't exist.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", WrapError(err, "failed to get home directory")
	}

	configDir := filepath.Join(homeDir, ".config", ConfigDirName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", WrapError(err, "failed to create config directory")
	}

	return configDir, nil
}

// GetAppDir returns the directory containing the running executable.
// Key databases and translation catalogs are resolved against it.
func GetAppDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", WrapError(err, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir ensures a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// IndexOf returns the index of the first occurrence of s in slice, or -1.
func IndexOf(slice []string, s string) int {
	for i, item := range slice {
		if item == s {
			return i
		}
	}
	return -1
}

// ExecRestarter restarts the application by spawning the current executable
// with the original arguments. Call it only once this process has released
// anything the new copy needs, such as the GTK application ID.
type ExecRestarter struct {
	Args []string
}

// Restart starts a fresh copy of the running binary.
func (r ExecRestarter) Restart() error {
	execPath, err := os.Executable()
	if err != nil {
		return WrapError(err, "failed to locate executable")
	}

	cmd := exec.Command(execPath, r.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return WrapError(err, "failed to restart application")
	}

	LogInfo("Restarted %s as pid %d", AppName, cmd.Process.Pid)
	return cmd.Process.Release()
}
