// Package main provides the entry point for gpg-manager preferences.
// It opens the preferences of the encryption tool in a GTK4 window, in a
// terminal editor, or reads and writes single settings from the command
// line.
//
// Usage:
//
//	gpg-manager [options]
//
// Environment:
//
//	GPGMANAGER_SETTINGS_BACKEND, GPGMANAGER_SETTINGS_PATH,
//	GPGMANAGER_APP_DIR, GPGMANAGER_LOG_LEVEL and GPGMANAGER_THEME override
//	the configuration file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/yllada/gpg-manager/cli"
	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/config"
	"github.com/yllada/gpg-manager/passcache"
	"github.com/yllada/gpg-manager/prefs"
	"github.com/yllada/gpg-manager/settings"
	"github.com/yllada/gpg-manager/tui"
	"github.com/yllada/gpg-manager/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	configPath  = flag.String("config", "", "Path to the configuration file")
	useTUI      = flag.Bool("tui", false, "Open the preferences in the terminal")

	// CLI flags
	listSettings = flag.Bool("list", false, "List all settings")
	getSetting   = flag.String("get", "", "Print the value of a setting")
	setSetting   = flag.String("set", "", "Change a setting (KEY=VALUE)")
	resetKeyDB   = flag.Bool("reset-keydb", false, "Use the default key database directory")
)

func main() {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp(os.Stdout)
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("GPG Manager v%s\n", appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logLevel := common.ParseLogLevel(cfg.LogLevel)
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}

	code, restart := run(cfg)
	if restart {
		// The GTK application has released its bus name by now.
		var restarter common.Restarter = common.ExecRestarter{Args: os.Args[1:]}
		if err := restarter.Restart(); err != nil {
			common.LogError("Restart failed: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		}
	}
	common.CloseLogger()
	os.Exit(code)
}

// run reports the exit code and whether a fresh copy should be started.
func run(cfg *config.Config) (int, bool) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		common.LogError("Config directory unavailable: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1, false
	}

	appDir, err := cfg.ResolveAppDir()
	if err != nil {
		common.LogError("Application directory unavailable: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1, false
	}

	settingsPath := cfg.ResolveSettingsPath(configDir)
	store, err := settings.Open(cfg.SettingsBackend, settingsPath)
	if err != nil {
		common.LogError("Failed to open settings %s: %v", settingsPath, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1, false
	}
	defer store.Close()
	common.LogDebug("Using %s settings at %s", cfg.SettingsBackend, settingsPath)

	if *listSettings || *getSetting != "" || *setSetting != "" || *resetKeyDB {
		// Setup graceful shutdown context
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		setupSignalHandler(cancel)

		return runCLI(ctx, store, appDir), false
	}

	cache := passcache.New(settings.GetBool(store, settings.KeyRememberPassword, false))
	ctrl := prefs.NewController(store, appDir, prefs.WithPassphraseCache(cache))
	locales := prefs.NewCatalogLocales(appDir)

	if *useTUI || (!hasDisplay() && term.IsTerminal(int(os.Stdin.Fd()))) {
		return runTUI(ctrl, locales), false
	}

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(common.AppID, appVersion, cfg, ctrl, locales)

	// Our flags are already parsed; GTK only gets the program name.
	exitCode := app.Run(os.Args[:1])
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	return exitCode, app.RestartRequested()
}

// runCLI handles command-line interface operations.
func runCLI(ctx context.Context, store settings.Store, appDir string) int {
	select {
	case <-ctx.Done():
		common.LogInfo("Operation cancelled before execution")
		return 1
	default:
	}

	cliApp := cli.New(store, appDir, os.Stdout)

	var cliErr error
	switch {
	case *listSettings:
		cliErr = cliApp.ListSettings()
	case *getSetting != "":
		cliErr = cliApp.Get(*getSetting)
	case *setSetting != "":
		cliErr = cliApp.Set(*setSetting)
	case *resetKeyDB:
		cliErr = cliApp.ResetKeyDB()
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		return 1
	}
	return 0
}

func runTUI(ctrl *prefs.Controller, locales common.LocaleLister) int {
	res, err := tui.Run(ctrl, locales, tui.ZenityPicker{})
	if err != nil {
		common.LogError("Terminal editor failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if res.Applied {
		fmt.Printf("✓ Saved %d settings\n", res.Written)
		if res.RestartRequired {
			fmt.Println("  Restart gpg-manager for the language or key database change to take effect.")
		}
	}
	return 0
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context to allow cleanup.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}
