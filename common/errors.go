// Package common provides shared constants, types, and utilities
// used across the gpg-manager application.
package common

import "errors"

// Sentinel errors for settings operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Store errors.
	ErrSettingsLoad   = errors.New("failed to load settings")
	ErrSettingsSave   = errors.New("failed to save settings")
	ErrUnknownBackend = errors.New("unknown settings backend")

	// Key and value errors.
	ErrUnknownKey   = errors.New("unknown settings key")
	ErrInvalidValue = errors.New("invalid settings value")

	// Preferences errors.
	ErrSnapshotClosed = errors.New("preferences already applied or cancelled")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
