package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	toggle  key.Binding
	tab     key.Binding
	backtab key.Binding
	save    key.Binding
	cancel  key.Binding
	quit    key.Binding
	add     key.Binding
	remove  key.Binding
	pick    key.Binding
	reset   key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	left:    key.NewBinding(key.WithKeys("left", "h")),
	right:   key.NewBinding(key.WithKeys("right", "l")),
	toggle:  key.NewBinding(key.WithKeys(" ", "space", "x")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	save:    key.NewBinding(key.WithKeys("enter", "ctrl+s")),
	cancel:  key.NewBinding(key.WithKeys("esc")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	add:     key.NewBinding(key.WithKeys("a")),
	remove:  key.NewBinding(key.WithKeys("d")),
	pick:    key.NewBinding(key.WithKeys("p")),
	reset:   key.NewBinding(key.WithKeys("r")),
}
