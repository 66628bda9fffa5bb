// Package common provides shared constants, types, and utilities
// used across the gpg-manager application.
package common

// LocaleLister enumerates the interface languages available to the user.
type LocaleLister interface {
	// Languages maps locale codes to display names. The empty code is the
	// "System Default" pseudo-entry and is always present.
	Languages() map[string]string
}

// DirectoryPicker asks the user for a directory.
type DirectoryPicker interface {
	// PickDirectory returns the chosen absolute path. ok is false when the
	// user cancelled the dialog.
	PickDirectory(title, start string) (path string, ok bool, err error)
}

// Restarter restarts the host application so settings that are only read
// at startup take effect.
type Restarter interface {
	Restart() error
}

// PassphraseCache holds passphrases for the lifetime of the process.
type PassphraseCache interface {
	// SetEnabled turns caching on or off. Turning it off drops every
	// cached passphrase immediately.
	SetEnabled(enabled bool)
}

// Notifier defines the interface for sending notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}
