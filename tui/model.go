// Package tui is the terminal preferences editor. It drives the same
// prefs.Controller as the preferences window, one tab per settings group.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/prefs"
)

const (
	tabGeneral = iota
	tabAppearance
	tabMime
	tabKeyservers
	tabAdvanced
	tabPaths
)

var tabNames = []string{"General", "Appearance", "MIME", "Keyservers", "Advanced", "Paths"}

var iconSizeChoices = []prefs.IconSize{prefs.IconSizeSmall, prefs.IconSizeMedium, prefs.IconSizeLarge}

// row is one editable line of a settings tab.
type row struct {
	label string
	value func() string
	// step moves a choice by delta; delta 0 toggles or advances.
	step func(delta int)
}

func boolRow(label string, f *prefs.Field[bool]) row {
	return row{
		label: label,
		value: func() string {
			if f.Value {
				return "[x]"
			}
			return "[ ]"
		},
		step: func(int) { f.Value = !f.Value },
	}
}

func cycle[T comparable](choices []T, cur T, delta int) T {
	if delta == 0 {
		delta = 1
	}
	for i, c := range choices {
		if c == cur {
			return choices[(i+delta+len(choices))%len(choices)]
		}
	}
	return choices[0]
}

// Model is the bubbletea model of the preferences editor.
type Model struct {
	ctrl   *prefs.Controller
	snap   *prefs.Snapshot
	picker common.DirectoryPicker
	langs  map[string]string
	codes  []string

	tab    int
	cursor int
	rows   map[int][]row
	input  textinput.Model

	status  string
	err     error
	result  prefs.ApplyResult
	applied bool
	done    bool
}

// New opens a snapshot on ctrl and returns an editor for it.
func New(ctrl *prefs.Controller, locales common.LocaleLister, picker common.DirectoryPicker) Model {
	input := textinput.New()
	input.Width = 50
	input.CharLimit = 256

	langs := locales.Languages()
	m := Model{
		ctrl:   ctrl,
		snap:   ctrl.Open(),
		picker: picker,
		langs:  langs,
		codes:  prefs.SortedCodes(langs),
		input:  input,
	}
	m.rows = m.buildRows()
	return m
}

func (m Model) buildRows() map[int][]row {
	g, a, mime, adv := m.snap.General, m.snap.Appearance, m.snap.Mime, m.snap.Advanced
	return map[int][]row{
		tabGeneral: {
			boolRow("Save checked keys on exit", g.SaveCheckedKeys),
			boolRow("Remember passphrases for the session", g.RememberPassword),
			boolRow("Confirm before importing keys", g.ConfirmImportKeys),
			{
				label: "Language",
				value: func() string { return m.languageLabel(g.Language.Value) },
				step:  func(d int) { g.Language.Value = cycle(m.codes, g.Language.Value, d) },
			},
		},
		tabAppearance: {
			{
				label: "Icon size",
				value: func() string { return a.IconSize.Value.String() },
				step:  func(d int) { a.IconSize.Value = cycle(iconSizeChoices, a.IconSize.Value, d) },
			},
			{
				label: "Toolbar style",
				value: func() string { return a.IconStyle.Value.String() },
				step:  func(d int) { a.IconStyle.Value = cycle(prefs.IconStyles, a.IconStyle.Value, d) },
			},
			boolRow("Save window size and position", a.SaveWindowState),
		},
		tabMime: {
			boolRow("Decode PGP/MIME messages", mime.ParseMime),
			boolRow("Decode quoted-printable text", mime.ParseQP),
			boolRow("Open attachments in a separate tab", mime.OpenAttachment),
		},
		tabAdvanced: {
			boolRow("Show steganography options", adv.Steganography),
		},
	}
}

func (m Model) languageLabel(code string) string {
	if name, ok := m.langs[code]; ok {
		return name
	}
	return code
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.quit) {
		return m.cancel()
	}

	servers := m.snap.Keyserver.Servers
	if m.tab == tabKeyservers && servers.State() == prefs.Editing {
		return m.updateEditing(keyMsg)
	}

	m.status = ""
	switch {
	case key.Matches(keyMsg, keys.tab):
		m.tab = (m.tab + 1) % len(tabNames)
		m.cursor = 0
	case key.Matches(keyMsg, keys.backtab):
		m.tab = (m.tab - 1 + len(tabNames)) % len(tabNames)
		m.cursor = 0
	case key.Matches(keyMsg, keys.save):
		return m.apply()
	case key.Matches(keyMsg, keys.cancel):
		return m.cancel()
	}

	switch m.tab {
	case tabKeyservers:
		return m.updateKeyservers(keyMsg)
	case tabPaths:
		return m.updatePaths(keyMsg)
	default:
		return m.updateRows(keyMsg)
	}
}

func (m Model) updateRows(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows[m.tab]
	if len(rows) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.toggle):
		rows[m.cursor].step(0)
	case key.Matches(msg, keys.left):
		rows[m.cursor].step(-1)
	case key.Matches(msg, keys.right):
		rows[m.cursor].step(1)
	}
	return m, nil
}

// The selected keyserver is the default one, so moving the cursor changes
// the default.
func (m Model) updateKeyservers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	servers := m.snap.Keyserver.Servers

	switch {
	case key.Matches(msg, keys.up):
		servers.Select(servers.Index() - 1)
	case key.Matches(msg, keys.down):
		servers.Select(servers.Index() + 1)
	case key.Matches(msg, keys.add):
		servers.Add()
		m.input.SetValue(prefs.KeyserverPlaceholder)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, keys.remove):
		if removed, ok := servers.Selected(); ok && servers.Remove() {
			m.status = "Removed " + removed
		}
	}
	return m, nil
}

// Every keystroke is written through to the list.
func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	servers := m.snap.Keyserver.Servers

	if key.Matches(msg, keys.save) || key.Matches(msg, keys.cancel) {
		servers.Select(servers.Index())
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	servers.SetText(m.input.Value())
	return m, cmd
}

func (m Model) updatePaths(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keydb := m.snap.Paths.KeyDB

	switch {
	case key.Matches(msg, keys.pick):
		if m.picker == nil {
			return m, nil
		}
		// The dialog is a separate window; the terminal waits for it.
		changed, err := keydb.Choose(m.picker, "Select key database directory")
		if err != nil {
			m.err = err
			common.LogWarn("Directory picker failed: %v", err)
		} else if changed {
			m.status = "Key database set to " + keydb.Value
		}
	case key.Matches(msg, keys.reset):
		keydb.ResetToDefault()
		m.status = "Key database reset to default"
	}
	return m, nil
}

func (m Model) apply() (tea.Model, tea.Cmd) {
	res, err := m.ctrl.Apply(m.snap)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.result = res
	m.applied = true
	m.done = true
	return m, tea.Quit
}

func (m Model) cancel() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Cancel(m.snap); err != nil {
		common.LogDebug("Cancel: %v", err)
	}
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(common.AppName+" Preferences") + "\n\n")

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	b.WriteString(strings.Join(tabs, "|") + "\n\n")

	switch m.tab {
	case tabKeyservers:
		b.WriteString(m.viewKeyservers())
	case tabPaths:
		b.WriteString(m.viewPaths())
	default:
		for i, r := range m.rows[m.tab] {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			fmt.Fprintf(&b, "%s%-40s %s\n", cursor, r.label, r.value())
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(m.help()))
	return appStyle.Render(b.String())
}

func (m Model) viewKeyservers() string {
	servers := m.snap.Keyserver.Servers
	if servers.Len() == 0 {
		return "No keyservers configured\n"
	}

	var b strings.Builder
	for i, s := range servers.Servers() {
		if i == servers.Index() {
			if servers.State() == prefs.Editing {
				fmt.Fprintf(&b, "> %s\n", m.input.View())
				continue
			}
			fmt.Fprintf(&b, "%s%s\n", cursorStyle.Render("> "), defaultStyle.Render(s+" (default)"))
			continue
		}
		fmt.Fprintf(&b, "  %s\n", s)
	}
	return b.String()
}

func (m Model) viewPaths() string {
	keydb := m.snap.Paths.KeyDB
	return fmt.Sprintf("Key database: %s\n              %s\n", keydb.Value, helpStyle.Render(keydb.Abs()))
}

func (m Model) help() string {
	switch {
	case m.tab == tabKeyservers && m.snap.Keyserver.Servers.State() == prefs.Editing:
		return "type the URL  enter/esc done"
	case m.tab == tabKeyservers:
		return "tab next  a add  d remove  ↑/↓ default  enter save  esc cancel"
	case m.tab == tabPaths:
		return "tab next  p choose  r reset  enter save  esc cancel"
	default:
		return "tab next  ↑/↓ move  space toggle  ←/→ change  enter save  esc cancel"
	}
}

// Result is the outcome of an editor session.
type Result struct {
	Applied bool
	prefs.ApplyResult
}

// Result reports how the session ended.
func (m Model) Result() Result {
	return Result{Applied: m.applied, ApplyResult: m.result}
}

// Run shows the editor until the user saves or cancels.
func Run(ctrl *prefs.Controller, locales common.LocaleLister, picker common.DirectoryPicker) (Result, error) {
	p := tea.NewProgram(New(ctrl, locales, picker), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("preferences editor failed: %w", err)
	}
	return final.(Model).Result(), nil
}
