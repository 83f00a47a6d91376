package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/orcadl/orca/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	downloadDirEntry *widget.Entry
	themeSelect      *widget.Select
	codecEntry       *widget.Entry
	filenameEntry    *widget.Entry
	formatEntry      *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	// Theme variant selection
	sd.themeSelect = widget.NewSelect([]string{config.ThemeLight, config.ThemeDark}, nil)

	// Preferred video codec
	sd.codecEntry = widget.NewEntry()
	sd.codecEntry.SetPlaceHolder("avc1, vp9, av01 (empty for any)")

	// Filename template
	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder("%(title)s.%(ext)s")

	// Raw format selector override
	sd.formatEntry = widget.NewEntry()
	sd.formatEntry.SetPlaceHolder("advanced: raw -f selector, overrides quality options")

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Download Directory:"),
		downloadDirRow,

		widget.NewLabel("Preferred Codec:"),
		sd.codecEntry,

		widget.NewLabel("Filename Template:"),
		sd.filenameEntry,

		widget.NewLabel("Format Override:"),
		sd.formatEntry,

		widget.NewSeparator(),
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Theme:"),
		sd.themeSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.themeSelect.SetSelected(sd.settings.GetThemeVariant())
	sd.codecEntry.SetText(sd.settings.GetCodec())
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.formatEntry.SetText(sd.settings.GetFormatOverride())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.downloadDirEntry.Text != "" {
		sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	}

	if sd.themeSelect.Selected != "" {
		sd.settings.SetThemeVariant(sd.themeSelect.Selected)
	}

	// Codec and format override may validly be cleared
	sd.settings.SetCodec(sd.codecEntry.Text)
	sd.settings.SetFormatOverride(sd.formatEntry.Text)

	if sd.filenameEntry.Text != "" {
		sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
