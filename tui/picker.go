package tui

import (
	"errors"

	"github.com/ncruces/zenity"
)

// ZenityPicker asks for a directory with the platform's native dialog.
type ZenityPicker struct{}

// PickDirectory implements common.DirectoryPicker.
func (ZenityPicker) PickDirectory(title, start string) (string, bool, error) {
	dir, err := zenity.SelectFile(
		zenity.Title(title),
		zenity.Directory(),
		zenity.Filename(start),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return dir, true, nil
}
