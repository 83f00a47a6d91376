package config

import (
	"fyne.io/fyne/v2"

	"github.com/orcadl/orca/internal/model"
	"github.com/orcadl/orca/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir      = "download_directory"
	KeyThemeVariant     = "theme_variant"
	KeyQuality          = "quality"
	KeyResolutionCap    = "resolution_cap"
	KeyCodec            = "codec"
	KeyContainer        = "container"
	KeyAudioOnly        = "audio_only"
	KeyFormatOverride   = "format_override"
	KeyFilenameTemplate = "filename_template"
	KeyPlaylistEnabled  = "playlist_enabled"
	KeyPlaylistLimit    = "playlist_limit"
	KeyVolume           = "preview_volume"
	KeyMuted            = "preview_muted"
)

// Theme variants
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Default values
const (
	DefaultThemeVariant = ThemeLight
	DefaultQuality      = model.QualityBest
	DefaultVolume       = 60
	MaxPlaylistLimit    = 500
	MaxResolutionCap    = 4320
	FallbackDownloadDir = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetThemeVariant returns the configured theme variant
func (s *Settings) GetThemeVariant() string {
	variant := s.app.Preferences().String(KeyThemeVariant)
	if variant != ThemeLight && variant != ThemeDark {
		return DefaultThemeVariant
	}
	return variant
}

// SetThemeVariant sets the theme variant
func (s *Settings) SetThemeVariant(variant string) {
	if variant != ThemeLight && variant != ThemeDark {
		variant = DefaultThemeVariant
	}
	s.app.Preferences().SetString(KeyThemeVariant, variant)
}

// GetQuality returns the configured download quality
func (s *Settings) GetQuality() model.Quality {
	quality := s.app.Preferences().String(KeyQuality)
	if quality == "" {
		s.SetQuality(DefaultQuality)
		return DefaultQuality
	}
	return model.Quality(quality)
}

// SetQuality sets the download quality
func (s *Settings) SetQuality(quality model.Quality) {
	s.app.Preferences().SetString(KeyQuality, string(quality))
}

// GetQualityOptions returns available quality options
func (s *Settings) GetQualityOptions() []model.Quality {
	return []model.Quality{model.QualityBest, model.QualityWorst}
}

// GetResolutionCap returns the maximum video height, 0 for no cap
func (s *Settings) GetResolutionCap() int {
	return s.app.Preferences().Int(KeyResolutionCap)
}

// SetResolutionCap sets the maximum video height; 0 clears the cap
func (s *Settings) SetResolutionCap(height int) {
	if height < 0 {
		height = 0
	}
	if height > MaxResolutionCap {
		height = MaxResolutionCap
	}
	s.app.Preferences().SetInt(KeyResolutionCap, height)
}

// GetCodec returns the preferred video codec, "" for any
func (s *Settings) GetCodec() string {
	return s.app.Preferences().String(KeyCodec)
}

// SetCodec sets the preferred video codec
func (s *Settings) SetCodec(codec string) {
	s.app.Preferences().SetString(KeyCodec, codec)
}

// GetContainer returns the output container, "" for the default
func (s *Settings) GetContainer() string {
	return s.app.Preferences().String(KeyContainer)
}

// SetContainer sets the output container
func (s *Settings) SetContainer(container string) {
	s.app.Preferences().SetString(KeyContainer, container)
}

// GetAudioOnly returns whether to extract audio only
func (s *Settings) GetAudioOnly() bool {
	return s.app.Preferences().Bool(KeyAudioOnly)
}

// SetAudioOnly sets audio-only extraction
func (s *Settings) SetAudioOnly(audioOnly bool) {
	s.app.Preferences().SetBool(KeyAudioOnly, audioOnly)
}

// GetFormatOverride returns the raw format selector, "" when unset.
// A non-empty override wins over quality, resolution cap and codec.
func (s *Settings) GetFormatOverride() string {
	return s.app.Preferences().String(KeyFormatOverride)
}

// SetFormatOverride sets the raw format selector
func (s *Settings) SetFormatOverride(selector string) {
	s.app.Preferences().SetString(KeyFormatOverride, selector)
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(model.DefaultFilenameTemplate)
		return model.DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = model.DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetPlaylistEnabled returns whether playlist URLs download all entries
func (s *Settings) GetPlaylistEnabled() bool {
	return s.app.Preferences().Bool(KeyPlaylistEnabled)
}

// SetPlaylistEnabled sets playlist downloading
func (s *Settings) SetPlaylistEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyPlaylistEnabled, enabled)
}

// GetPlaylistLimit returns the maximum playlist entries to download, 0 for all
func (s *Settings) GetPlaylistLimit() int {
	return s.app.Preferences().Int(KeyPlaylistLimit)
}

// SetPlaylistLimit sets the maximum playlist entries; 0 means no limit
func (s *Settings) SetPlaylistLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxPlaylistLimit {
		limit = MaxPlaylistLimit
	}
	s.app.Preferences().SetInt(KeyPlaylistLimit, limit)
}

// GetVolume returns the preview playback volume (0-100)
func (s *Settings) GetVolume() int {
	return s.app.Preferences().IntWithFallback(KeyVolume, DefaultVolume)
}

// SetVolume sets the preview playback volume
func (s *Settings) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	s.app.Preferences().SetInt(KeyVolume, volume)
}

// GetMuted returns whether preview playback is muted
func (s *Settings) GetMuted() bool {
	return s.app.Preferences().Bool(KeyMuted)
}

// SetMuted sets preview playback mute
func (s *Settings) SetMuted(muted bool) {
	s.app.Preferences().SetBool(KeyMuted, muted)
}

// DownloadOptions assembles the persisted preferences into download options.
func (s *Settings) DownloadOptions() model.DownloadOptions {
	opts := model.DownloadOptions{
		Quality:          s.GetQuality(),
		ResolutionCap:    s.GetResolutionCap(),
		Codec:            s.GetCodec(),
		Container:        s.GetContainer(),
		AudioOnly:        s.GetAudioOnly(),
		FormatOverride:   s.GetFormatOverride(),
		FilenameTemplate: s.GetFilenameTemplate(),
	}
	if s.GetPlaylistEnabled() {
		opts.PlaylistLimit = s.GetPlaylistLimit()
	} else {
		// Playlist downloading off: take only the first entry of list URLs.
		opts.PlaylistLimit = 1
	}
	return opts
}
