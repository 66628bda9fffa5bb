// Package ui provides the graphical preferences window for gpg-manager.
//
// The window is a GTK4 notebook with one tab per settings group (general,
// appearance, PGP/MIME, keyserver, advanced and key paths), built from
// libadwaita preference groups and rows. Widgets edit the fields of a
// prefs.Snapshot directly; Save applies the snapshot through the
// prefs.Controller and Cancel or closing the window discards it.
//
// # Thread Safety
//
// GTK operations must execute on the main thread. When updating UI
// from background goroutines, use glib.IdleAdd() to schedule updates
// on the main thread.
//
// # File Organization
//
//   - app.go: Application lifecycle, theme and restart
//   - preferences.go: Preferences window and its tabs
//   - styles.go: CSS styling and theme support
//   - notifications.go: Desktop notifications over D-Bus
package ui
