// Package common provides shared constants, types, utilities, and interfaces
// used throughout the gpg-manager application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application-wide constants like file names, directories, and UI dimensions
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Collaborators of the preferences core (locales, directory picker, restart)
//   - Logger: Leveled logging on top of zerolog with a rotated log file
//   - Utils: Common utility functions for directories and restarting the application
//
// # Usage
//
// Import the package to access shared functionality:
//
//	import "github.com/yllada/gpg-manager/common"
//
//	// Use logger
//	common.LogInfo("Applied %d settings", n)
//
//	// Check errors
//	if errors.Is(err, common.ErrUnknownKey) {
//	    // Handle a key outside the schema
//	}
package common
