package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// CSS for the preferences window. Colors are theme-aware so the window
// follows the system dark/light mode.
const appCSS = `
notebook > header {
    border-bottom: 1px solid alpha(currentColor, 0.15);
}

notebook > header tab {
    padding: 6px 14px;
}

.keyserver-url {
    font-family: monospace;
}

list.boxed-list > row:selected .keyserver-url {
    font-weight: 600;
}

.dialog-action-area {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding-top: 12px;
}

.dialog-button {
    min-width: 96px;
}

entry {
    border-radius: 6px;
    min-height: 34px;
}

button.flat:hover {
    background-color: alpha(currentColor, 0.1);
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
