// Package prefs holds the in-memory side of the preferences dialog.
//
// Each persisted setting is bound to a typed field (Binding). Bindings are
// grouped the way the dialog shows them and a Controller loads all groups
// into a Snapshot when the dialog opens and writes them back, in a fixed
// order, when the user confirms:
//
//	general, mime, appearance, keyserver, advanced, paths
//
// The keyserver tab is backed by KeyserverList, a small Idle/Editing state
// machine, and the key database location by PathField, which stores paths
// relative to the default key database directory with "." meaning the
// directory itself.
package prefs
