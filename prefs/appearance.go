package prefs

import "github.com/yllada/gpg-manager/settings"

// IconSize is the toolbar icon size choice.
type IconSize int

const (
	IconSizeUnset IconSize = iota
	IconSizeSmall
	IconSizeMedium
	IconSizeLarge
)

var iconSizes = map[IconSize]settings.Size{
	IconSizeSmall:  {Width: 12, Height: 12},
	IconSizeMedium: {Width: 24, Height: 24},
	IconSizeLarge:  {Width: 32, Height: 32},
}

// DefaultIconSize is used when no size is stored.
var DefaultIconSize = iconSizes[IconSizeMedium]

// String returns the label of the size.
func (s IconSize) String() string {
	switch s {
	case IconSizeSmall:
		return "small"
	case IconSizeMedium:
		return "medium"
	case IconSizeLarge:
		return "large"
	default:
		return "unset"
	}
}

// Size returns the stored dimensions of the choice.
func (s IconSize) Size() (settings.Size, bool) {
	size, ok := iconSizes[s]
	return size, ok
}

// IconSizeOf maps stored dimensions back to a choice. Dimensions that match
// none of the choices yield IconSizeUnset.
func IconSizeOf(size settings.Size) IconSize {
	for choice, s := range iconSizes {
		if s == size {
			return choice
		}
	}
	return IconSizeUnset
}

// IconSizeField binds toolbar/iconsize. An unset choice is not written, so
// unrecognised stored dimensions are left alone.
type IconSizeField struct {
	loaded IconSize
	Value  IconSize
}

// Keys implements Binding.
func (f *IconSizeField) Keys() []string { return []string{settings.KeyIconSize} }

// Load implements Binding.
func (f *IconSizeField) Load(s settings.Store) {
	f.loaded = IconSizeOf(settings.GetSize(s, settings.KeyIconSize, DefaultIconSize))
	f.Value = f.loaded
}

// Apply implements Binding.
func (f *IconSizeField) Apply(s settings.Store) error {
	size, ok := f.Value.Size()
	if !ok {
		return nil
	}
	return settings.SetSize(s, settings.KeyIconSize, size)
}

// Changed implements Binding.
func (f *IconSizeField) Changed() bool { return f.Value != f.loaded }

// IconStyle is the toolbar button style. The numeric values are the ones
// persisted under toolbar/iconstyle.
type IconStyle int

const (
	IconStyleUnset         IconStyle = -1
	IconStyleIconOnly      IconStyle = 0
	IconStyleTextOnly      IconStyle = 1
	IconStyleTextUnderIcon IconStyle = 3
)

// DefaultIconStyle is used when no style is stored.
const DefaultIconStyle = IconStyleTextUnderIcon

// IconStyles lists the selectable styles in display order.
var IconStyles = []IconStyle{IconStyleTextOnly, IconStyleIconOnly, IconStyleTextUnderIcon}

// String returns the label of the style.
func (s IconStyle) String() string {
	switch s {
	case IconStyleIconOnly:
		return "just icons"
	case IconStyleTextOnly:
		return "just text"
	case IconStyleTextUnderIcon:
		return "text and icons"
	default:
		return "unset"
	}
}

// Valid reports whether s is one of the selectable styles.
func (s IconStyle) Valid() bool {
	switch s {
	case IconStyleIconOnly, IconStyleTextOnly, IconStyleTextUnderIcon:
		return true
	}
	return false
}

// IconStyleField binds toolbar/iconstyle. Like IconSizeField, an unset
// style is not written.
type IconStyleField struct {
	loaded IconStyle
	Value  IconStyle
}

// Keys implements Binding.
func (f *IconStyleField) Keys() []string { return []string{settings.KeyIconStyle} }

// Load implements Binding.
func (f *IconStyleField) Load(s settings.Store) {
	style := IconStyle(settings.GetInt(s, settings.KeyIconStyle, int(DefaultIconStyle)))
	if !style.Valid() {
		style = IconStyleUnset
	}
	f.loaded = style
	f.Value = style
}

// Apply implements Binding.
func (f *IconStyleField) Apply(s settings.Store) error {
	if !f.Value.Valid() {
		return nil
	}
	return settings.SetInt(s, settings.KeyIconStyle, int(f.Value))
}

// Changed implements Binding.
func (f *IconStyleField) Changed() bool { return f.Value != f.loaded }
