package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yllada/gpg-manager/prefs"
	"github.com/yllada/gpg-manager/settings"
)

type fakeLocales map[string]string

func (f fakeLocales) Languages() map[string]string { return f }

type fakePicker struct {
	dir string
	ok  bool
}

func (f fakePicker) PickDirectory(title, start string) (string, bool, error) {
	return f.dir, f.ok, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func newTestModel(t *testing.T, initial map[string]settings.Value) (Model, *settings.MemoryStore) {
	t.Helper()
	store := settings.NewMemoryStore(initial)
	ctrl := prefs.NewController(store, "/app")
	locales := fakeLocales{"": prefs.SystemDefaultLanguage, "de": "Deutsch (de)", "fr": "français (fr)"}
	return New(ctrl, locales, fakePicker{dir: "/app/keydb/work", ok: true}), store
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func gotoTab(m Model, target int) Model {
	for m.tab != target {
		m, _ = send(m, tab)
	}
	return m
}

func TestModel_ToggleAndSave(t *testing.T) {
	m, store := newTestModel(t, nil)
	m = gotoTab(m, tabAdvanced)

	m, _ = send(m, runes("x"))
	if !m.snap.Advanced.Steganography.Value {
		t.Fatal("toggle should switch steganography on")
	}

	m, cmd := send(m, enter)
	if cmd == nil {
		t.Error("saving should quit the program")
	}
	if !m.Result().Applied {
		t.Error("Result().Applied = false after save")
	}
	if !settings.GetBool(store, settings.KeySteganography, false) {
		t.Error("steganography should be stored as true")
	}
}

func TestModel_CancelWritesNothing(t *testing.T) {
	m, store := newTestModel(t, nil)
	m = gotoTab(m, tabAdvanced)

	m, _ = send(m, runes("x"), esc)

	if m.Result().Applied {
		t.Error("Result().Applied = true after cancel")
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Errorf("store keys = %v, want none", keys)
	}
	if !m.snap.Closed() {
		t.Error("snapshot should be closed after cancel")
	}
}

func TestModel_KeyserverEditing(t *testing.T) {
	m, store := newTestModel(t, map[string]settings.Value{
		settings.KeyKeyServerList:    settings.StringListValue([]string{"a", "b"}),
		settings.KeyDefaultKeyServer: settings.StringValue("a"),
	})
	m = gotoTab(m, tabKeyservers)
	servers := m.snap.Keyserver.Servers

	m, _ = send(m, runes("a"))
	if servers.State() != prefs.Editing {
		t.Fatalf("State() after add = %v, want editing", servers.State())
	}

	m, _ = send(m, runes("x"))
	if got := servers.Servers(); !reflect.DeepEqual(got, []string{"a", "b", "http://x"}) {
		t.Errorf("Servers() while typing = %v", got)
	}

	// enter finishes editing instead of saving.
	m, _ = send(m, enter)
	if servers.State() != prefs.Idle {
		t.Errorf("State() after enter = %v, want idle", servers.State())
	}
	if m.Result().Applied {
		t.Fatal("enter while editing should not save")
	}

	m, _ = send(m, runes("d"))
	if got := servers.Servers(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Servers() after remove = %v", got)
	}
	if servers.Index() != 1 {
		t.Errorf("Index() after remove = %v, want 1", servers.Index())
	}

	m, _ = send(m, enter)
	if !m.Result().Applied {
		t.Fatal("save failed")
	}
	if got := settings.GetString(store, settings.KeyDefaultKeyServer, ""); got != "b" {
		t.Errorf("defaultKeyServer = %q, want b", got)
	}
}

func TestModel_KeyserverCursorSelectsDefault(t *testing.T) {
	m, _ := newTestModel(t, map[string]settings.Value{
		settings.KeyKeyServerList:    settings.StringListValue([]string{"a", "b"}),
		settings.KeyDefaultKeyServer: settings.StringValue("a"),
	})
	m = gotoTab(m, tabKeyservers)

	m, _ = send(m, down, down)

	if sel, _ := m.snap.Keyserver.Servers.Selected(); sel != "b" {
		t.Errorf("Selected() = %q, want b", sel)
	}
}

func TestModel_LanguageCycle(t *testing.T) {
	m, _ := newTestModel(t, nil)

	// Language is the fourth row of the general tab.
	m, _ = send(m, down, down, down, right)
	if got := m.snap.General.Language.Value; got != "de" {
		t.Errorf("Language = %q, want de", got)
	}

	m, _ = send(m, right, right)
	if got := m.snap.General.Language.Value; got != "" {
		t.Errorf("Language = %q, want wrap to system default", got)
	}
}

func TestModel_IconStyleCycle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = gotoTab(m, tabAppearance)

	m, _ = send(m, down, right)
	if got := m.snap.Appearance.IconStyle.Value; got != prefs.IconStyleTextOnly {
		t.Errorf("IconStyle = %v, want %v", got, prefs.IconStyleTextOnly)
	}
}

func TestModel_PathsPickAndReset(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = gotoTab(m, tabPaths)
	keydb := m.snap.Paths.KeyDB

	m, _ = send(m, runes("p"))
	if keydb.Value != "work" {
		t.Errorf("KeyDB = %q, want work", keydb.Value)
	}

	m, _ = send(m, runes("r"))
	if keydb.Value != "." {
		t.Errorf("KeyDB = %q, want .", keydb.Value)
	}
	if m.View() == "" {
		t.Error("View() should render while open")
	}
}

func TestCycle(t *testing.T) {
	choices := []int{1, 2, 3}
	tests := []struct {
		cur, delta, want int
	}{
		{1, 1, 2},
		{3, 1, 1},
		{1, -1, 3},
		{2, 0, 3},
		{9, 1, 1},
	}

	for _, tt := range tests {
		if got := cycle(choices, tt.cur, tt.delta); got != tt.want {
			t.Errorf("cycle(%v, %v) = %v, want %v", tt.cur, tt.delta, got, tt.want)
		}
	}
}
