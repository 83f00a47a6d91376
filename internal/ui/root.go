package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/orcadl/orca/internal/config"
	"github.com/orcadl/orca/internal/convert"
	"github.com/orcadl/orca/internal/download"
	"github.com/orcadl/orca/internal/model"
	"github.com/orcadl/orca/internal/platform"
	"github.com/orcadl/orca/internal/preview"
)

// Status line texts
const (
	StatusReady       = "Ready"
	StatusStarting    = "Starting download..."
	StatusCompleted   = "Completed"
	StatusFailed      = "Failed"
	StatusCancelled   = "Cancelled"
	StatusProbing     = "Checking playlist..."
	StatusConverting  = "Converting..."
	StatusConvertDone = "Conversion finished"
)

// Option select labels
const (
	AutoOption  = "auto"
	NoCapOption = "no cap"
)

// Convert button labels
const (
	ConvertLabel     = "Convert to MP4"
	StopConvertLabel = "Stop Conversion"
)

// PlaylistProbeTimeout bounds the pre-download playlist size check.
const PlaylistProbeTimeout = 15 * time.Second

// RootUI represents the main UI structure
type RootUI struct {
	app    fyne.App
	window fyne.Window

	downloadSvc download.Downloader
	convertSvc  convert.Converter
	prober      *platform.PlaylistProber
	settings    *config.Settings

	// URL row
	urlEntry    *widget.Entry
	downloadBtn *widget.Button

	// Destination row
	folderLabel *widget.Label

	// Options
	qualitySelect    *widget.Select
	resolutionSelect *widget.Select
	containerSelect  *widget.Select
	audioOnlyCheck   *widget.Check
	playlistCheck    *widget.Check
	playlistLimit    *widget.Entry

	// Progress
	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	// Preview and conversion of the finished file
	previewPane     *PreviewPane
	convertBtn      *widget.Button
	revealBtn       *widget.Button
	openBtn         *widget.Button
	lastOutputPath  string
	activeConvertID string

	settingsDialog *SettingsDialog
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader, convertSvc convert.Converter, player *preview.Player) *RootUI {
	settings := config.NewSettings(app)

	// Ensure the destination directory exists up front
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("failed to ensure downloads dir %s: %v", downloadsDir, err)
	}

	ui := &RootUI{
		app:         app,
		window:      window,
		downloadSvc: downloadSvc,
		convertSvc:  convertSvc,
		prober:      platform.NewPlaylistProber(),
		settings:    settings,
		previewPane: NewPreviewPane(player),
	}

	ui.convertSvc.SetUpdateCallback(ui.onConvertUpdate)

	ui.setupUI()

	// Single consumer of the controller's event channels for the app lifetime
	go ui.consumeEvents()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// URL entry row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Enter video or playlist URL")
	ui.urlEntry.Validator = ui.validateURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	topPanel := container.NewBorder(nil, nil, nil, ui.downloadBtn, ui.urlEntry)

	// Destination folder row
	ui.folderLabel = widget.NewLabel(ui.settings.GetDownloadDirectory())
	ui.folderLabel.Truncation = fyne.TextTruncateEllipsis
	browseBtn := widget.NewButton(IconFolder, ui.onChooseFolder)
	folderRow := container.NewBorder(nil, nil, widget.NewLabel("Save to:"), browseBtn, ui.folderLabel)

	// Option widgets
	ui.qualitySelect = widget.NewSelect(ui.qualityOptions(), nil)
	ui.qualitySelect.SetSelected(string(ui.settings.GetQuality()))

	ui.resolutionSelect = widget.NewSelect([]string{NoCapOption, "2160", "1440", "1080", "720", "480"}, nil)
	ui.resolutionSelect.SetSelected(resolutionLabel(ui.settings.GetResolutionCap()))

	ui.containerSelect = widget.NewSelect([]string{AutoOption, "mp4", "mkv", "webm", "m4a", "mp3", "opus"}, nil)
	ui.containerSelect.SetSelected(containerLabel(ui.settings.GetContainer()))

	ui.audioOnlyCheck = widget.NewCheck("Audio only", nil)
	ui.audioOnlyCheck.SetChecked(ui.settings.GetAudioOnly())

	ui.playlistCheck = widget.NewCheck("Whole playlist", nil)
	ui.playlistCheck.SetChecked(ui.settings.GetPlaylistEnabled())

	ui.playlistLimit = widget.NewEntry()
	ui.playlistLimit.SetPlaceHolder("limit")
	if limit := ui.settings.GetPlaylistLimit(); limit > 0 {
		ui.playlistLimit.SetText(strconv.Itoa(limit))
	}

	optionsCard := widget.NewCard("", "", container.NewVBox(
		container.NewGridWithColumns(3,
			labeled("Quality", ui.qualitySelect),
			labeled("Max height", ui.resolutionSelect),
			labeled("Container", ui.containerSelect),
		),
		container.NewHBox(ui.audioOnlyCheck, ui.playlistCheck, ui.playlistLimit),
	))

	// Progress row
	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel(StatusReady)
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	// Actions on the finished file
	ui.convertBtn = widget.NewButton(ConvertLabel, ui.onConvertClick)
	ui.convertBtn.Disable()
	ui.revealBtn = widget.NewButton("Show in Folder", ui.onRevealFile)
	ui.revealBtn.Disable()
	ui.openBtn = widget.NewButton("Open Externally", ui.onOpenFile)
	ui.openBtn.Disable()

	actionRow := container.NewHBox(ui.convertBtn, ui.revealBtn, ui.openBtn)
	previewSection := container.NewBorder(nil, actionRow, nil, nil, ui.previewPane)

	ui.previewPane.SetCallbacks(ui.onPreviewError, ui.settings.SetVolume, ui.settings.SetMuted)
	ui.previewPane.SetVolume(ui.settings.GetVolume())
	ui.previewPane.SetMuted(ui.settings.GetMuted())

	// Form on the left, preview on the right
	formColumn := container.NewVBox(topPanel, folderRow, optionsCard, ui.progressBar, ui.statusLabel)
	split := container.NewHSplit(formColumn, previewSection)
	split.SetOffset(0.45)

	ui.window.SetContent(split)
}

// labeled stacks a caption above a widget for the options grid
func labeled(caption string, obj fyne.CanvasObject) fyne.CanvasObject {
	label := widget.NewLabel(caption)
	label.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewVBox(label, obj)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem("Settings"+" "+IconSettings, ui.onShowSettings)
	themeItem := fyne.NewMenuItem("Toggle Theme", ui.onToggleTheme)

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("File", settingsItem, themeItem),
	)

	ui.window.SetMainMenu(mainMenu)
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// onDownloadClick starts a download, or cancels the running one.
func (ui *RootUI) onDownloadClick() {
	if ui.downloadSvc.State() == model.StateRunning {
		if err := ui.downloadSvc.Cancel(); err != nil {
			log.Printf("cancel failed: %v", err)
		}
		return
	}

	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.statusLabel.SetText("Please enter a URL")
		return
	}
	if err := ui.validateURL(urlText); err != nil {
		ui.statusLabel.SetText("Invalid URL: " + err.Error())
		return
	}

	// Clean URL from characters that would break the argument list
	cleanURL := strings.NewReplacer("\n", "", "\r", "", "\t", " ").Replace(urlText)
	cleanURL = strings.TrimSpace(cleanURL)

	opts := ui.collectOptions()

	log.Printf("starting download: %s", cleanURL)

	req := model.DownloadRequest{
		URL:     cleanURL,
		DestDir: ui.settings.GetDownloadDirectory(),
	}
	if err := ui.downloadSvc.Start(req, opts); err != nil {
		if errors.Is(err, download.ErrDownloadInProgress) {
			ui.statusLabel.SetText("A download is already running")
			return
		}
		dialog.ShowError(err, ui.window)
		return
	}

	ui.downloadBtn.SetText("Cancel")
	ui.downloadBtn.Importance = widget.DangerImportance
	ui.downloadBtn.Refresh()
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(StatusStarting)
	ui.convertBtn.Disable()

	// Playlists: report the entry count while the download spins up
	if platform.IsPlaylistURL(cleanURL) && ui.playlistCheck.Checked {
		go ui.probePlaylist(cleanURL)
	}
}

// collectOptions reads the option widgets, persists them, and merges in the
// settings-only fields (codec, template, format override).
func (ui *RootUI) collectOptions() model.DownloadOptions {
	ui.settings.SetQuality(model.Quality(ui.qualitySelect.Selected))
	ui.settings.SetResolutionCap(parseResolution(ui.resolutionSelect.Selected))
	ui.settings.SetContainer(parseContainer(ui.containerSelect.Selected))
	ui.settings.SetAudioOnly(ui.audioOnlyCheck.Checked)
	ui.settings.SetPlaylistEnabled(ui.playlistCheck.Checked)
	if limit, err := strconv.Atoi(strings.TrimSpace(ui.playlistLimit.Text)); err == nil {
		ui.settings.SetPlaylistLimit(limit)
	} else {
		ui.settings.SetPlaylistLimit(0)
	}

	return ui.settings.DownloadOptions()
}

// probePlaylist resolves the playlist size and shows it in the status line.
func (ui *RootUI) probePlaylist(playlistURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), PlaylistProbeTimeout)
	defer cancel()

	playlist, err := ui.prober.Probe(ctx, playlistURL)
	if err != nil {
		log.Printf("playlist probe failed: %v", err)
		return
	}

	fyne.Do(func() {
		// Only annotate while the download is still the active one
		if ui.downloadSvc.State() == model.StateRunning {
			ui.statusLabel.SetText(fmt.Sprintf("%s: %d items", playlist.Title, playlist.Size()))
		}
	})
}

// consumeEvents drains the controller's progress and result channels.
func (ui *RootUI) consumeEvents() {
	updates := ui.downloadSvc.Updates()
	results := ui.downloadSvc.Results()

	for {
		select {
		case update := <-updates:
			ui.applyProgress(update)
		case result := <-results:
			ui.applyResult(result)
		}
	}
}

// applyProgress reflects a progress update into the progress row.
func (ui *RootUI) applyProgress(update model.ProgressUpdate) {
	fyne.Do(func() {
		if update.HasPercent() {
			ui.progressBar.SetValue(float64(update.Percent) / 100)
		}
		if update.Status != "" {
			ui.statusLabel.SetText(update.Status)
		}
	})
}

// applyResult reflects a terminal download result into the shell.
func (ui *RootUI) applyResult(result model.DownloadResult) {
	fyne.Do(func() {
		ui.downloadBtn.SetText("Download")
		ui.downloadBtn.Importance = widget.HighImportance
		ui.downloadBtn.Refresh()

		switch {
		case result.Err == nil:
			ui.progressBar.SetValue(1)
			ui.statusLabel.SetText(StatusCompleted)
			ui.lastOutputPath = result.OutputPath
			ui.convertBtn.Enable()
			ui.revealBtn.Enable()
			ui.openBtn.Enable()
			ui.urlEntry.SetText("")
		case errors.Is(result.Err, download.ErrCancelled):
			ui.statusLabel.SetText(StatusCancelled)
		default:
			ui.statusLabel.SetText(StatusFailed + ": " + result.Err.Error())
			dialog.ShowError(result.Err, ui.window)
		}
	})

	if result.Err == nil && result.OutputPath != "" {
		// Loading probes the file; keep it off the UI thread
		go func(path string) {
			if err := ui.previewPane.Load(path); err != nil {
				log.Printf("preview load failed: %v", err)
				ui.onPreviewError(err)
			}
		}(result.OutputPath)
	}
}

// onPreviewError surfaces playback problems without interrupting the shell.
func (ui *RootUI) onPreviewError(err error) {
	fyne.Do(func() {
		ui.statusLabel.SetText("Preview: " + err.Error())
	})
}

// onConvertClick converts the last downloaded file to MP4, or stops the
// running conversion.
func (ui *RootUI) onConvertClick() {
	if ui.activeConvertID != "" {
		if err := ui.convertSvc.StopConversion(ui.activeConvertID); err != nil {
			log.Printf("stop conversion failed: %v", err)
		}
		return
	}

	if ui.lastOutputPath == "" {
		return
	}

	task, err := ui.convertSvc.StartConversion(ui.lastOutputPath)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	log.Printf("conversion started: %s -> %s", task.InputPath, task.OutputPath)
	ui.activeConvertID = task.ID
	ui.convertBtn.SetText(StopConvertLabel)
	ui.convertBtn.Importance = widget.DangerImportance
	ui.convertBtn.Refresh()
	ui.statusLabel.SetText(StatusConverting)
}

// onConvertUpdate reflects conversion progress into the shell.
func (ui *RootUI) onConvertUpdate(task *model.ConvertTask) {
	fyne.Do(func() {
		switch task.State {
		case model.StateRunning:
			ui.progressBar.SetValue(task.Progress)
			ui.statusLabel.SetText(StatusConverting)
		case model.StateCompleted:
			ui.progressBar.SetValue(1)
			ui.statusLabel.SetText(StatusConvertDone)
			ui.resetConvertButton()
		case model.StateFailed:
			ui.statusLabel.SetText(StatusFailed + ": " + task.LastError)
			ui.resetConvertButton()
		case model.StateCancelled:
			ui.statusLabel.SetText(StatusCancelled)
			ui.resetConvertButton()
		}
	})
}

// resetConvertButton returns the convert button to its start state once a
// conversion reaches a terminal state.
func (ui *RootUI) resetConvertButton() {
	ui.activeConvertID = ""
	ui.convertBtn.SetText(ConvertLabel)
	ui.convertBtn.Importance = widget.MediumImportance
	ui.convertBtn.Refresh()
	ui.convertBtn.Enable()
}

// onRevealFile shows the downloaded file in the system file manager
func (ui *RootUI) onRevealFile() {
	if ui.lastOutputPath == "" {
		return
	}
	if err := platform.OpenFileInManager(ui.lastOutputPath); err != nil {
		log.Printf("reveal failed: %v", err)
		ui.statusLabel.SetText("Could not open file manager")
	}
}

// onOpenFile opens the downloaded file with the system default player
func (ui *RootUI) onOpenFile() {
	if ui.lastOutputPath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(ui.lastOutputPath); err != nil {
		log.Printf("open failed: %v", err)
		ui.statusLabel.SetText("Could not open file")
	}
}

// onChooseFolder handles destination directory browsing
func (ui *RootUI) onChooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.settings.SetDownloadDirectory(uri.Path())
		ui.folderLabel.SetText(uri.Path())
	}, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	if ui.settingsDialog == nil {
		ui.settingsDialog = NewSettingsDialog(ui.settings, ui.window, func() {
			ui.folderLabel.SetText(ui.settings.GetDownloadDirectory())
			ui.applyTheme()
		})
	}
	ui.settingsDialog.Show()
}

// onToggleTheme flips between the light and dark variants
func (ui *RootUI) onToggleTheme() {
	if ui.settings.GetThemeVariant() == config.ThemeDark {
		ui.settings.SetThemeVariant(config.ThemeLight)
	} else {
		ui.settings.SetThemeVariant(config.ThemeDark)
	}
	ui.applyTheme()
}

// applyTheme installs the configured theme variant
func (ui *RootUI) applyTheme() {
	variant := theme.VariantLight
	if ui.settings.GetThemeVariant() == config.ThemeDark {
		variant = theme.VariantDark
	}
	ui.app.Settings().SetTheme(NewOrcaTheme(variant))
}

func (ui *RootUI) qualityOptions() []string {
	options := make([]string, 0, 2)
	for _, quality := range ui.settings.GetQualityOptions() {
		options = append(options, string(quality))
	}
	return options
}

// resolutionLabel renders a height cap as a select label
func resolutionLabel(height int) string {
	if height <= 0 {
		return NoCapOption
	}
	return strconv.Itoa(height)
}

// parseResolution converts a select label back to a height cap
func parseResolution(label string) int {
	if label == NoCapOption {
		return 0
	}
	height, err := strconv.Atoi(label)
	if err != nil {
		return 0
	}
	return height
}

// containerLabel renders a container setting as a select label
func containerLabel(name string) string {
	if name == "" {
		return AutoOption
	}
	return name
}

// parseContainer converts a select label back to a container setting
func parseContainer(label string) string {
	if label == AutoOption {
		return ""
	}
	return label
}
