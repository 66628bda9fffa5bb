package prefs

import (
	"fmt"
	"path/filepath"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/settings"
)

// Group names, one per preferences tab.
const (
	GroupGeneral    = "general"
	GroupAppearance = "appearance"
	GroupMime       = "mime"
	GroupKeyserver  = "keyserver"
	GroupAdvanced   = "advanced"
	GroupPaths      = "paths"
)

// Group is a named set of bindings shown together.
type Group interface {
	Name() string
	Bindings() []Binding
}

// General holds passphrase, key selection, import and language settings.
type General struct {
	RememberPassword  *Field[bool]
	SaveCheckedKeys   *Field[bool]
	ConfirmImportKeys *Field[bool]
	// Language is a locale code; "" follows the system.
	Language *Field[string]
}

// NewGeneral returns the general group with its defaults.
func NewGeneral() *General {
	return &General{
		RememberPassword:  NewBool(settings.KeyRememberPassword, false),
		SaveCheckedKeys:   NewBool(settings.KeyKeySave, false),
		ConfirmImportKeys: NewBool(settings.KeyConfirmImportKeys, true),
		Language:          NewString(settings.KeyLanguage, ""),
	}
}

func (g *General) Name() string { return GroupGeneral }

func (g *General) Bindings() []Binding {
	return []Binding{g.SaveCheckedKeys, g.RememberPassword, g.Language, g.ConfirmImportKeys}
}

// Appearance holds toolbar and window settings.
type Appearance struct {
	IconSize        *IconSizeField
	IconStyle       *IconStyleField
	SaveWindowState *Field[bool]
}

// NewAppearance returns the appearance group with its defaults.
func NewAppearance() *Appearance {
	return &Appearance{
		IconSize:        &IconSizeField{Value: IconSizeMedium, loaded: IconSizeMedium},
		IconStyle:       &IconStyleField{Value: DefaultIconStyle, loaded: DefaultIconStyle},
		SaveWindowState: NewBool(settings.KeyWindowSave, false),
	}
}

func (g *Appearance) Name() string { return GroupAppearance }

func (g *Appearance) Bindings() []Binding {
	return []Binding{g.IconSize, g.IconStyle, g.SaveWindowState}
}

// Mime holds PGP/MIME handling settings.
type Mime struct {
	ParseMime      *Field[bool]
	ParseQP        *Field[bool]
	OpenAttachment *Field[bool]
}

// NewMime returns the MIME group with its defaults.
func NewMime() *Mime {
	return &Mime{
		ParseMime:      NewBool(settings.KeyParseMime, false),
		ParseQP:        NewBool(settings.KeyParseQP, true),
		OpenAttachment: NewBool(settings.KeyOpenAttachment, false),
	}
}

func (g *Mime) Name() string { return GroupMime }

func (g *Mime) Bindings() []Binding {
	return []Binding{g.ParseMime, g.ParseQP, g.OpenAttachment}
}

// Keyserver holds the keyserver list.
type Keyserver struct {
	Servers *KeyserverList
}

// NewKeyserver returns an empty keyserver group.
func NewKeyserver() *Keyserver {
	return &Keyserver{Servers: NewKeyserverList()}
}

func (g *Keyserver) Name() string { return GroupKeyserver }

func (g *Keyserver) Bindings() []Binding { return []Binding{g.Servers} }

// Advanced holds options hidden from casual users.
type Advanced struct {
	Steganography *Field[bool]
}

// NewAdvanced returns the advanced group with its defaults.
func NewAdvanced() *Advanced {
	return &Advanced{Steganography: NewBool(settings.KeySteganography, false)}
}

func (g *Advanced) Name() string { return GroupAdvanced }

func (g *Advanced) Bindings() []Binding { return []Binding{g.Steganography} }

// Paths holds the key database location.
type Paths struct {
	KeyDB *PathField
}

// NewPaths binds the key database path relative to appDir/keydb.
func NewPaths(appDir string) *Paths {
	return &Paths{KeyDB: NewPathField(settings.KeyKeyDBPath, filepath.Join(appDir, common.KeyDBDirName))}
}

func (g *Paths) Name() string { return GroupPaths }

func (g *Paths) Bindings() []Binding { return []Binding{g.KeyDB} }

func loadGroup(g Group, s settings.Store) {
	for _, b := range g.Bindings() {
		b.Load(s)
	}
}

// applyGroup writes every binding of g and returns how many succeeded.
func applyGroup(g Group, s settings.Store) (int, error) {
	written := 0
	for _, b := range g.Bindings() {
		if err := b.Apply(s); err != nil {
			return written, fmt.Errorf("applying %s %v: %w", g.Name(), b.Keys(), err)
		}
		written++
	}
	return written, nil
}
