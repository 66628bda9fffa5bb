package ui

import (
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/config"
	"github.com/yllada/gpg-manager/prefs"
)

// Application represents the main application
type Application struct {
	app       *adw.Application
	window    *PreferencesWindow
	ctrl      *prefs.Controller
	config    *config.Config
	locales   common.LocaleLister
	notifier  common.Notifier
	version   string

	restartRequested bool
}

// NewApplication creates a new application showing the preferences of ctrl.
func NewApplication(appID, version string, cfg *config.Config, ctrl *prefs.Controller, locales common.LocaleLister) *Application {
	app := adw.NewApplication(appID, gio.ApplicationFlagsNone)

	application := &Application{
		app:      app,
		ctrl:     ctrl,
		config:   cfg,
		locales:  locales,
		notifier: NewDBusNotifier(),
		version:  version,
	}

	// Connect activation signal
	app.ConnectActivate(application.onActivate)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	if a.window != nil {
		a.window.Present()
		return
	}

	a.ApplyTheme(a.config.Theme)
	a.setupAppIcon()
	LoadStyles()

	a.window = NewPreferencesWindow(a)
	a.window.Show()
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName("gpg-manager")
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "auto" (system default), "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	manager := adw.StyleManagerGetDefault()
	if manager == nil {
		return
	}

	switch theme {
	case "light":
		manager.SetColorScheme(adw.ColorSchemeForceLight)
	case "dark":
		manager.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		manager.SetColorScheme(adw.ColorSchemeDefault)
	}
}

// GetVersion returns the application version
func (a *Application) GetVersion() string {
	return a.version
}

// Restart quits the application and asks the caller of Run to start a
// fresh copy. The new process must not be spawned while this one still
// owns the application ID on the bus, or it would only activate us.
func (a *Application) Restart() {
	a.restartRequested = true
	a.Quit()
}

// RestartRequested reports whether Run returned because of Restart.
func (a *Application) RestartRequested() bool {
	return a.restartRequested
}

// Quit closes the application
func (a *Application) Quit() {
	a.app.Quit()
}
