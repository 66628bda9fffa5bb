// Package cli provides command-line interface functionality for gpg-manager.
// It lets users inspect and change preferences from the terminal or from
// scripts without opening the preferences window.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/prefs"
	"github.com/yllada/gpg-manager/settings"
)

// CLI represents the command-line interface.
type CLI struct {
	store  settings.Store
	appDir string
	out    io.Writer
}

// New creates a CLI that reads and writes store and prints to out.
func New(store settings.Store, appDir string, out io.Writer) *CLI {
	return &CLI{store: store, appDir: appDir, out: out}
}

// ListSettings lists every known setting with its stored value.
func (c *CLI) ListSettings() error {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tKIND\tVALUE")
	fmt.Fprintln(w, "---\t----\t-----")

	for _, key := range settings.KnownKeys() {
		kind, _ := settings.KindOf(key)
		value := "(unset)"
		if v, ok := c.store.Get(key); ok {
			value = v.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, kind, value)
	}

	return w.Flush()
}

// Get prints the stored value of key.
func (c *CLI) Get(key string) error {
	key = strings.TrimSpace(key)
	if _, ok := settings.KindOf(key); !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownKey, key)
	}

	v, ok := c.store.Get(key)
	if !ok {
		fmt.Fprintln(c.out, "(unset)")
		return nil
	}
	fmt.Fprintln(c.out, v.String())
	return nil
}

// Set parses an assignment of the form KEY=VALUE and stores it. The value
// is parsed according to the kind declared for the key: lists are comma
// separated and sizes are written WxH.
func (c *CLI) Set(assignment string) error {
	key, text, found := strings.Cut(assignment, "=")
	if !found {
		return fmt.Errorf("%w: expected KEY=VALUE, got %q", common.ErrInvalidValue, assignment)
	}
	key = strings.TrimSpace(key)

	kind, ok := settings.KindOf(key)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownKey, key)
	}

	v, err := settings.ParseValue(kind, text)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := c.store.Set(key, v); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	common.LogDebug("Set %s = %s from the command line", key, v)
	fmt.Fprintf(c.out, "✓ %s = %s\n", key, v)
	return nil
}

// ResetKeyDB points the key database back at the default directory. No
// other setting is read or written.
func (c *CLI) ResetKeyDB() error {
	paths := prefs.NewPaths(c.appDir)
	paths.KeyDB.Load(c.store)
	paths.KeyDB.ResetToDefault()

	if err := paths.KeyDB.Apply(c.store); err != nil {
		return fmt.Errorf("failed to reset key database path: %w", err)
	}

	fmt.Fprintf(c.out, "✓ Key database: %s\n", paths.KeyDB.Abs())
	if paths.KeyDB.Changed() {
		fmt.Fprintln(c.out, "  Restart gpg-manager for the change to take effect.")
	}
	return nil
}

// PrintHelp prints CLI usage help.
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, `GPG Manager - Preferences

Usage:
  gpg-manager [OPTIONS]

Options:
  --version           Show version and exit
  --verbose           Enable verbose logging
  --config PATH       Use an alternative configuration file
  --list              List all settings
  --get KEY           Print the value of a setting
  --set KEY=VALUE     Change a setting
  --reset-keydb       Use the default key database directory
  --tui               Open the preferences in the terminal
  --help              Show this help message

Examples:
  gpg-manager --list
  gpg-manager --get keyserver/defaultKeyServer
  gpg-manager --set keyserver/keyServerList=hkp://a.example,hkp://b.example
  gpg-manager --set toolbar/iconsize=32x32

Notes:
  - List values are comma separated; sizes are written WxH
  - Run without options to open the preferences window`)
}
