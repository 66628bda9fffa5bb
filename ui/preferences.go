package ui

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/prefs"
)

var iconSizeChoices = []prefs.IconSize{prefs.IconSizeSmall, prefs.IconSizeMedium, prefs.IconSizeLarge}

// PreferencesWindow is the tabbed preferences window. It edits one
// snapshot and either applies or cancels it when closed.
type PreferencesWindow struct {
	app    *Application
	window *gtk.ApplicationWindow
	snap   *prefs.Snapshot

	serverList   *gtk.ListBox
	serverLabels []*gtk.Label
	serverEntry  *gtk.Entry
	removeBtn    *gtk.Button
	keydbRow     *adw.ActionRow

	// syncing is set while widgets are updated from the model, so their
	// signal handlers do not write back.
	syncing bool
}

// NewPreferencesWindow loads a snapshot and builds the window for it.
func NewPreferencesWindow(app *Application) *PreferencesWindow {
	pw := &PreferencesWindow{
		app:  app,
		snap: app.ctrl.Open(),
	}

	pw.build()
	return pw
}

func (pw *PreferencesWindow) build() {
	pw.window = gtk.NewApplicationWindow(&pw.app.app.Application)
	pw.window.SetTitle(common.AppName + " Preferences")
	pw.window.SetDefaultSize(common.PrefsWindowWidth, common.PrefsWindowHeight)

	pw.window.ConnectCloseRequest(func() bool {
		if !pw.snap.Closed() {
			_ = pw.app.ctrl.Cancel(pw.snap)
		}
		return false
	})

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	notebook := gtk.NewNotebook()
	notebook.SetVExpand(true)
	notebook.AppendPage(pw.generalPage(), gtk.NewLabel("General"))
	notebook.AppendPage(pw.appearancePage(), gtk.NewLabel("Appearance"))
	notebook.AppendPage(pw.mimePage(), gtk.NewLabel("PGP/MIME"))
	notebook.AppendPage(pw.keyserverPage(), gtk.NewLabel("Keyserver"))
	notebook.AppendPage(pw.advancedPage(), gtk.NewLabel("Advanced"))
	notebook.AppendPage(pw.pathsPage(), gtk.NewLabel("Key Paths"))
	rootBox.Append(notebook)

	rootBox.Append(pw.buttonBar())
	pw.window.SetChild(rootBox)
}

func (pw *PreferencesWindow) generalPage() gtk.Widgetter {
	g := pw.snap.General

	keys := newGroup("Keys", "")
	keys.Add(switchRow("Save checked keys", "Remember the key selection on exit", g.SaveCheckedKeys))
	keys.Add(switchRow("Confirm key import", "Ask before importing keys found in text", g.ConfirmImportKeys))

	pass := newGroup("Passphrases", "")
	pass.Add(switchRow("Remember passphrases", "Keep passphrases in memory until the application quits", g.RememberPassword))

	langs := pw.app.locales.Languages()
	codes := prefs.SortedCodes(langs)
	if common.IndexOf(codes, g.Language.Value) < 0 {
		codes = append(codes, g.Language.Value)
	}
	labels := make([]string, len(codes))
	for i, code := range codes {
		labels[i] = langs[code]
		if labels[i] == "" {
			labels[i] = code
		}
	}

	lang := newGroup("Language", "Changing the language requires a restart")
	lang.Add(dropDownRow("Language", "", labels, common.IndexOf(codes, g.Language.Value), func(i int) {
		g.Language.Value = codes[i]
	}))

	return page(keys, pass, lang)
}

func (pw *PreferencesWindow) appearancePage() gtk.Widgetter {
	a := pw.snap.Appearance

	sizeLabels := make([]string, len(iconSizeChoices))
	sizeIndex := -1
	for i, s := range iconSizeChoices {
		size, _ := s.Size()
		sizeLabels[i] = s.String() + " (" + size.String() + ")"
		if s == a.IconSize.Value {
			sizeIndex = i
		}
	}

	styleLabels := make([]string, len(prefs.IconStyles))
	styleIndex := -1
	for i, s := range prefs.IconStyles {
		styleLabels[i] = s.String()
		if s == a.IconStyle.Value {
			styleIndex = i
		}
	}

	toolbar := newGroup("Toolbar", "")
	toolbar.Add(dropDownRow("Icon size", "", sizeLabels, sizeIndex, func(i int) {
		a.IconSize.Value = iconSizeChoices[i]
	}))
	toolbar.Add(dropDownRow("Button style", "", styleLabels, styleIndex, func(i int) {
		a.IconStyle.Value = prefs.IconStyles[i]
	}))

	window := newGroup("Window", "")
	window.Add(switchRow("Save window state", "Restore size and position on the next start", a.SaveWindowState))

	return page(toolbar, window)
}

func (pw *PreferencesWindow) mimePage() gtk.Widgetter {
	m := pw.snap.Mime

	group := newGroup("PGP/MIME", "")
	group.Add(switchRow("Decode PGP/MIME", "Split signed and encrypted MIME messages into parts", m.ParseMime))
	group.Add(switchRow("Decode quoted-printable", "Decode quoted-printable text before verifying", m.ParseQP))
	group.Add(switchRow("Open attachments", "Show decrypted attachments in their own tab", m.OpenAttachment))

	return page(group)
}

func (pw *PreferencesWindow) keyserverPage() gtk.Widgetter {
	servers := pw.snap.Keyserver.Servers

	group := newGroup("Keyservers", "The selected server is used by default")

	pw.serverList = gtk.NewListBox()
	pw.serverList.SetSelectionMode(gtk.SelectionSingle)
	pw.serverList.AddCSSClass("boxed-list")
	pw.serverList.ConnectRowSelected(func(row *gtk.ListBoxRow) {
		if pw.syncing || row == nil {
			return
		}
		servers.Select(row.Index())
		pw.serverEntry.SetVisible(false)
	})
	group.Add(pw.serverList)

	pw.serverEntry = gtk.NewEntry()
	pw.serverEntry.SetVisible(false)
	pw.serverEntry.SetMarginTop(8)
	pw.serverEntry.ConnectChanged(func() {
		if pw.syncing {
			return
		}
		text := pw.serverEntry.Text()
		if servers.SetText(text) {
			pw.serverLabels[servers.Index()].SetText(text)
		}
	})
	pw.serverEntry.ConnectActivate(func() {
		servers.Select(servers.Index())
		pw.serverEntry.SetVisible(false)
	})
	group.Add(pw.serverEntry)

	addBtn := gtk.NewButtonFromIconName("list-add-symbolic")
	addBtn.SetTooltipText("Add keyserver")
	addBtn.ConnectClicked(func() {
		servers.Add()
		pw.refreshServers()

		pw.syncing = true
		pw.serverEntry.SetText(prefs.KeyserverPlaceholder)
		pw.syncing = false
		pw.serverEntry.SetVisible(true)
		pw.serverEntry.GrabFocus()
		pw.serverEntry.SetPosition(-1)
	})

	pw.removeBtn = gtk.NewButtonFromIconName("list-remove-symbolic")
	pw.removeBtn.SetTooltipText("Remove selected keyserver")
	pw.removeBtn.ConnectClicked(func() {
		if servers.Remove() {
			pw.serverEntry.SetVisible(false)
			pw.refreshServers()
		}
	})

	buttons := gtk.NewBox(gtk.OrientationHorizontal, 6)
	buttons.SetHAlign(gtk.AlignEnd)
	buttons.SetMarginTop(8)
	buttons.Append(addBtn)
	buttons.Append(pw.removeBtn)
	group.Add(buttons)

	pw.refreshServers()
	return page(group)
}

// refreshServers rebuilds the list rows from the model.
func (pw *PreferencesWindow) refreshServers() {
	servers := pw.snap.Keyserver.Servers

	pw.syncing = true
	defer func() { pw.syncing = false }()

	for row := pw.serverList.RowAtIndex(0); row != nil; row = pw.serverList.RowAtIndex(0) {
		pw.serverList.Remove(row)
	}

	pw.serverLabels = pw.serverLabels[:0]
	for _, s := range servers.Servers() {
		label := gtk.NewLabel(s)
		label.SetXAlign(0)
		label.AddCSSClass("keyserver-url")
		label.SetMarginTop(10)
		label.SetMarginBottom(10)
		label.SetMarginStart(12)
		label.SetMarginEnd(12)

		row := gtk.NewListBoxRow()
		row.SetChild(label)
		pw.serverList.Append(row)
		pw.serverLabels = append(pw.serverLabels, label)
	}

	if i := servers.Index(); i >= 0 {
		pw.serverList.SelectRow(pw.serverList.RowAtIndex(i))
	}
	pw.removeBtn.SetSensitive(servers.Index() >= 0)
}

func (pw *PreferencesWindow) advancedPage() gtk.Widgetter {
	group := newGroup("Advanced", "")
	group.Add(switchRow("Steganography", "Show options to hide encrypted text in other text", pw.snap.Advanced.Steganography))
	return page(group)
}

func (pw *PreferencesWindow) pathsPage() gtk.Widgetter {
	keydb := pw.snap.Paths.KeyDB

	pw.keydbRow = adw.NewActionRow()
	pw.keydbRow.SetTitle("Key database")

	chooseBtn := gtk.NewButtonFromIconName("folder-open-symbolic")
	chooseBtn.SetTooltipText("Choose directory")
	chooseBtn.SetVAlign(gtk.AlignCenter)
	chooseBtn.AddCSSClass("flat")
	chooseBtn.ConnectClicked(pw.chooseKeyDB)
	pw.keydbRow.AddSuffix(chooseBtn)

	resetBtn := gtk.NewButtonFromIconName("edit-undo-symbolic")
	resetBtn.SetTooltipText("Use the default directory")
	resetBtn.SetVAlign(gtk.AlignCenter)
	resetBtn.AddCSSClass("flat")
	resetBtn.ConnectClicked(func() {
		keydb.ResetToDefault()
		pw.refreshKeyDB()
	})
	pw.keydbRow.AddSuffix(resetBtn)

	group := newGroup("Key Paths", "Relative paths are resolved against "+keydb.Base())
	group.Add(pw.keydbRow)

	pw.refreshKeyDB()
	return page(group)
}

// chooseKeyDB opens a folder chooser. Cancelling leaves the path as it is.
func (pw *PreferencesWindow) chooseKeyDB() {
	keydb := pw.snap.Paths.KeyDB

	native := gtk.NewFileChooserNative("Select key database directory", &pw.window.Window,
		gtk.FileChooserActionSelectFolder, "Select", "Cancel")
	native.SetModal(true)
	if err := native.SetCurrentFolder(gio.NewFileForPath(keydb.Abs())); err != nil {
		common.LogDebug("Could not preselect %s: %v", keydb.Abs(), err)
	}

	native.ConnectResponse(func(response int) {
		defer native.Destroy()
		if gtk.ResponseType(response) != gtk.ResponseAccept {
			return
		}
		file := native.File()
		if file == nil || file.Path() == "" {
			return
		}
		keydb.SetChosen(file.Path())
		pw.refreshKeyDB()
	})
	native.Show()
}

func (pw *PreferencesWindow) refreshKeyDB() {
	keydb := pw.snap.Paths.KeyDB
	subtitle := keydb.Value
	if keydb.Value == prefs.DefaultKeyDBPath {
		subtitle = "Default (" + keydb.Abs() + ")"
	}
	pw.keydbRow.SetSubtitle(subtitle)
}

func (pw *PreferencesWindow) buttonBar() gtk.Widgetter {
	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(common.DialogMargin)
	buttonBar.SetMarginEnd(common.DialogMargin)
	buttonBar.AddCSSClass("dialog-action-area")

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.AddCSSClass("dialog-button")
	cancelBtn.ConnectClicked(func() {
		pw.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.AddCSSClass("dialog-button")
	saveBtn.ConnectClicked(pw.save)
	buttonBar.Append(saveBtn)

	return buttonBar
}

func (pw *PreferencesWindow) save() {
	res, err := pw.app.ctrl.Apply(pw.snap)
	if err != nil {
		pw.showError("Could not save preferences", err.Error())
		return
	}

	pw.app.NotifySaved(res.RestartRequired)
	if res.RestartRequired {
		pw.showRestartPrompt()
		return
	}
	pw.window.Close()
}

// showRestartPrompt offers to restart right away.
func (pw *PreferencesWindow) showRestartPrompt() {
	dialog, box := pw.messageWindow("view-refresh-symbolic", "Restart required",
		"The language or key database changes take effect after "+common.AppName+" restarts.")

	buttons := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttons.SetHAlign(gtk.AlignCenter)
	buttons.SetMarginTop(12)

	laterBtn := gtk.NewButtonWithLabel("Later")
	laterBtn.ConnectClicked(func() {
		dialog.Close()
		pw.window.Close()
	})
	buttons.Append(laterBtn)

	restartBtn := gtk.NewButtonWithLabel("Restart Now")
	restartBtn.AddCSSClass("suggested-action")
	restartBtn.ConnectClicked(func() {
		dialog.Close()
		pw.app.Restart()
	})
	buttons.Append(restartBtn)

	box.Append(buttons)
	dialog.Show()
}

func (pw *PreferencesWindow) showError(title, message string) {
	dialog, box := pw.messageWindow("dialog-error-symbolic", title, message)

	okBtn := gtk.NewButtonWithLabel("OK")
	okBtn.SetHAlign(gtk.AlignCenter)
	okBtn.SetMarginTop(12)
	okBtn.ConnectClicked(func() {
		dialog.Close()
	})
	box.Append(okBtn)

	dialog.Show()
}

func (pw *PreferencesWindow) messageWindow(iconName, title, message string) (*gtk.Window, *gtk.Box) {
	window := gtk.NewWindow()
	window.SetTitle(title)
	window.SetTransientFor(&pw.window.Window)
	window.SetModal(true)
	window.SetDefaultSize(350, 150)
	window.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(common.DialogMargin)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)
	mainBox.SetHAlign(gtk.AlignCenter)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(48)
	mainBox.Append(icon)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("heading")
	mainBox.Append(titleLabel)

	msgLabel := gtk.NewLabel(message)
	msgLabel.SetWrap(true)
	msgLabel.SetMaxWidthChars(40)
	mainBox.Append(msgLabel)

	window.SetChild(mainBox)
	return window, mainBox
}

// Show displays the preferences window.
func (pw *PreferencesWindow) Show() {
	pw.window.Show()
}

// Present raises the window.
func (pw *PreferencesWindow) Present() {
	pw.window.Present()
}

func newGroup(title, description string) *adw.PreferencesGroup {
	group := adw.NewPreferencesGroup()
	group.SetTitle(title)
	if description != "" {
		group.SetDescription(description)
	}
	return group
}

// page wraps groups in a scrollable tab page.
func page(groups ...*adw.PreferencesGroup) gtk.Widgetter {
	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	box := gtk.NewBox(gtk.OrientationVertical, 20)
	box.SetMarginTop(common.DialogMargin)
	box.SetMarginBottom(16)
	box.SetMarginStart(common.DialogMargin)
	box.SetMarginEnd(common.DialogMargin)
	for _, g := range groups {
		box.Append(g)
	}

	scrolled.SetChild(box)
	return scrolled
}

func switchRow(title, subtitle string, field *prefs.Field[bool]) *adw.ActionRow {
	sw := gtk.NewSwitch()
	sw.SetActive(field.Value)
	sw.SetVAlign(gtk.AlignCenter)
	sw.NotifyProperty("active", func() {
		field.Value = sw.Active()
	})

	row := adw.NewActionRow()
	row.SetTitle(title)
	row.SetSubtitle(subtitle)
	row.AddSuffix(sw)
	row.SetActivatableWidget(sw)
	return row
}

// dropDownRow shows labels in a drop-down. A negative selected leaves the
// drop-down empty, which is how unrecognised stored values are shown.
func dropDownRow(title, subtitle string, labels []string, selected int, onChange func(i int)) *adw.ActionRow {
	dropDown := gtk.NewDropDown(gtk.NewStringList(labels), nil)
	dropDown.SetVAlign(gtk.AlignCenter)
	dropDown.AddCSSClass("flat")
	if selected >= 0 {
		dropDown.SetSelected(uint(selected))
	} else {
		dropDown.SetSelected(gtk.INVALID_LIST_POSITION)
	}
	dropDown.NotifyProperty("selected", func() {
		i := int(dropDown.Selected())
		if i >= 0 && i < len(labels) {
			onChange(i)
		}
	})

	row := adw.NewActionRow()
	row.SetTitle(title)
	if subtitle != "" {
		row.SetSubtitle(subtitle)
	}
	row.AddSuffix(dropDown)
	return row
}
