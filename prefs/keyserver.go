package prefs

import (
	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/settings"
)

// KeyserverPlaceholder is the text of a freshly added entry.
const KeyserverPlaceholder = "http://"

// EditState is the state of the keyserver list editor.
type EditState int

const (
	// Idle: the list is displayed and nothing is being edited.
	Idle EditState = iota
	// Editing: the selected entry receives every text change.
	Editing
)

// String returns a human-readable state name.
func (s EditState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// KeyserverList is the edit model behind the keyserver tab: an ordered list
// of server URLs, a selection and an Idle/Editing state. The selected entry
// is persisted as the default keyserver.
//
// Entries are unique by position only. No URL validation is performed, so a
// half-typed URL is a legal entry.
type KeyserverList struct {
	servers  []string
	selected int
	state    EditState

	loadedServers []string
	loadedDefault string
	hasDefault    bool
}

// NewKeyserverList returns an empty list with nothing selected.
func NewKeyserverList() *KeyserverList {
	return &KeyserverList{selected: -1}
}

// Keys implements Binding.
func (k *KeyserverList) Keys() []string {
	return []string{settings.KeyKeyServerList, settings.KeyDefaultKeyServer}
}

// Load reads the list and selects the first entry equal to the stored
// default, if any.
func (k *KeyserverList) Load(s settings.Store) {
	k.servers = settings.GetStringList(s, settings.KeyKeyServerList, nil)
	def, ok := s.Get(settings.KeyDefaultKeyServer)
	k.loadedDefault = def.AsString()
	k.hasDefault = ok
	k.loadedServers = append([]string(nil), k.servers...)
	k.selected = -1
	if ok {
		k.selected = common.IndexOf(k.servers, k.loadedDefault)
	}
	k.state = Idle
}

// Apply writes the full ordered list and the selected entry as the default.
// With no valid selection the default key is removed if it still names a
// server, so it never points at an entry that is gone.
func (k *KeyserverList) Apply(s settings.Store) error {
	if err := settings.SetStringList(s, settings.KeyKeyServerList, k.servers); err != nil {
		return err
	}

	if sel, ok := k.Selected(); ok {
		return settings.SetString(s, settings.KeyDefaultKeyServer, sel)
	}
	if settings.GetString(s, settings.KeyDefaultKeyServer, "") != "" {
		return s.Remove(settings.KeyDefaultKeyServer)
	}
	return nil
}

// Changed implements Binding.
func (k *KeyserverList) Changed() bool {
	if len(k.servers) != len(k.loadedServers) {
		return true
	}
	for i := range k.servers {
		if k.servers[i] != k.loadedServers[i] {
			return true
		}
	}
	sel, ok := k.Selected()
	if !ok {
		return k.hasDefault && k.loadedDefault != ""
	}
	return sel != k.loadedDefault
}

// Add appends the placeholder entry, selects it and starts editing.
func (k *KeyserverList) Add() {
	k.servers = append(k.servers, KeyserverPlaceholder)
	k.selected = len(k.servers) - 1
	k.state = Editing
}

// SetText overwrites the selected entry while editing. It reports whether
// the text was taken; in Idle it is ignored.
func (k *KeyserverList) SetText(text string) bool {
	if k.state != Editing || !k.validIndex(k.selected) {
		return false
	}
	k.servers[k.selected] = text
	return true
}

// Select makes entry i current and ends editing. Invalid indexes are
// ignored.
func (k *KeyserverList) Select(i int) bool {
	if !k.validIndex(i) {
		return false
	}
	k.selected = i
	k.state = Idle
	return true
}

// Remove deletes the selected entry and clamps the selection. It is a
// no-op when nothing is selected.
func (k *KeyserverList) Remove() bool {
	if !k.validIndex(k.selected) {
		return false
	}
	k.servers = append(k.servers[:k.selected], k.servers[k.selected+1:]...)
	if k.selected >= len(k.servers) {
		k.selected = len(k.servers) - 1
	}
	k.state = Idle
	return true
}

// Servers returns a copy of the entries in order.
func (k *KeyserverList) Servers() []string {
	return append([]string(nil), k.servers...)
}

// Len returns the number of entries.
func (k *KeyserverList) Len() int { return len(k.servers) }

// Index returns the selected position, or -1.
func (k *KeyserverList) Index() int { return k.selected }

// Selected returns the selected entry.
func (k *KeyserverList) Selected() (string, bool) {
	if !k.validIndex(k.selected) {
		return "", false
	}
	return k.servers[k.selected], true
}

// State returns the editor state.
func (k *KeyserverList) State() EditState { return k.state }

func (k *KeyserverList) validIndex(i int) bool {
	return i >= 0 && i < len(k.servers)
}
