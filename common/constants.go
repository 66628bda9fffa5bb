// Package common provides shared constants, types, and utilities
// used across the gpg-manager application.
package common

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.gpgmanager.app"
	// AppName is the display name of the application.
	AppName = "GPG Manager"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "gpg-manager"
)

// File names used by the application.
const (
	ConfigFileName   = "config.yaml"
	SettingsFileName = "settings.yaml"
	SettingsDBName   = "settings.db"
	LogFileName      = "gpg-manager.log"
)

// Directories resolved against the application directory.
const (
	// KeyDBDirName is the default key database directory.
	KeyDBDirName = "keydb"
	// LocalesDirName holds the translation catalogs.
	LocalesDirName = "locales"
	// LocaleFilePrefix prefixes every translation catalog file name.
	LocaleFilePrefix = "gpg-manager_"
	// LocaleFileExt is the extension of translation catalogs.
	LocaleFileExt = ".po"
)

// UI constants.
const (
	// PrefsWindowWidth is the default preferences window width.
	PrefsWindowWidth = 560
	// PrefsWindowHeight is the default preferences window height.
	PrefsWindowHeight = 520
	// DialogMargin is the standard margin for dialog content.
	DialogMargin = 24
)

// Settings store backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)
