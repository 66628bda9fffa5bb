package prefs

import "github.com/yllada/gpg-manager/settings"

// Binding pairs persisted keys with an in-memory field.
type Binding interface {
	// Keys returns the settings keys the binding reads and writes.
	Keys() []string
	// Load pulls the stored value, or the declared default, into the field.
	Load(s settings.Store)
	// Apply pushes the field back to the store.
	Apply(s settings.Store) error
	// Changed reports whether the field differs from what Load produced.
	Changed() bool
}

// Field is a typed setting bound to exactly one key.
// Value is the live state edited by the UI.
type Field[T comparable] struct {
	key    string
	def    T
	get    func(settings.Store, string, T) T
	set    func(settings.Store, string, T) error
	loaded T
	Value  T
}

func newField[T comparable](key string, def T, get func(settings.Store, string, T) T, set func(settings.Store, string, T) error) *Field[T] {
	return &Field[T]{key: key, def: def, get: get, set: set, loaded: def, Value: def}
}

// NewBool binds a checkbox-like setting.
func NewBool(key string, def bool) *Field[bool] {
	return newField(key, def, settings.GetBool, settings.SetBool)
}

// NewString binds a free-text or choice setting.
func NewString(key string, def string) *Field[string] {
	return newField(key, def, settings.GetString, settings.SetString)
}

// NewInt binds an integer setting.
func NewInt(key string, def int) *Field[int] {
	return newField(key, def, settings.GetInt, settings.SetInt)
}

// Key returns the bound settings key.
func (f *Field[T]) Key() string { return f.key }

// Keys implements Binding.
func (f *Field[T]) Keys() []string { return []string{f.key} }

// Default returns the value used when the key is missing.
func (f *Field[T]) Default() T { return f.def }

// Load implements Binding.
func (f *Field[T]) Load(s settings.Store) {
	f.loaded = f.get(s, f.key, f.def)
	f.Value = f.loaded
}

// Apply implements Binding.
func (f *Field[T]) Apply(s settings.Store) error {
	return f.set(s, f.key, f.Value)
}

// Changed implements Binding.
func (f *Field[T]) Changed() bool { return f.Value != f.loaded }
