package prefs

import (
	"path/filepath"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/settings"
)

// DefaultKeyDBPath is the sentinel meaning "the default key database
// directory itself".
const DefaultKeyDBPath = "."

// RelativePath returns target relative to base. Equal directories yield
// DefaultKeyDBPath. When no relative path exists (for example a different
// volume) the cleaned target is returned.
func RelativePath(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.Clean(target)
	}
	if rel == "" {
		return DefaultKeyDBPath
	}
	return rel
}

// PathField binds the key database path. Its value is relative to a fixed
// base directory and is never empty.
type PathField struct {
	key    string
	base   string
	loaded string
	Value  string
}

// NewPathField binds key to a path relative to base.
func NewPathField(key, base string) *PathField {
	return &PathField{key: key, base: base, loaded: DefaultKeyDBPath, Value: DefaultKeyDBPath}
}

// Keys implements Binding.
func (p *PathField) Keys() []string { return []string{p.key} }

// Load reads the stored path; an empty value becomes DefaultKeyDBPath.
func (p *PathField) Load(s settings.Store) {
	v := settings.GetString(s, p.key, "")
	if v == "" {
		v = DefaultKeyDBPath
	}
	p.loaded = v
	p.Value = v
}

// Apply implements Binding.
func (p *PathField) Apply(s settings.Store) error {
	return settings.SetString(s, p.key, p.Value)
}

// Changed implements Binding.
func (p *PathField) Changed() bool { return p.Value != p.loaded }

// Base returns the directory the value is relative to.
func (p *PathField) Base() string { return p.base }

// ResetToDefault points the field back at the base directory.
func (p *PathField) ResetToDefault() string {
	p.Value = DefaultKeyDBPath
	return p.Value
}

// SetChosen stores dir, an absolute directory, relative to the base.
func (p *PathField) SetChosen(dir string) string {
	p.Value = RelativePath(p.base, dir)
	return p.Value
}

// Abs resolves the current value against the base.
func (p *PathField) Abs() string {
	if filepath.IsAbs(p.Value) {
		return p.Value
	}
	return filepath.Join(p.base, p.Value)
}

// Choose lets the user pick a new directory. A cancelled pick leaves the
// value unchanged and returns false.
func (p *PathField) Choose(picker common.DirectoryPicker, title string) (bool, error) {
	dir, ok, err := picker.PickDirectory(title, p.Abs())
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	p.SetChosen(dir)
	return true, nil
}
