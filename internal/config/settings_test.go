package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/orcadl/orca/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestThemeVariant(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if variant := settings.GetThemeVariant(); variant != DefaultThemeVariant {
		t.Errorf("Expected default theme %s, got %s", DefaultThemeVariant, variant)
	}

	// Test setting custom value
	settings.SetThemeVariant(ThemeDark)
	if variant := settings.GetThemeVariant(); variant != ThemeDark {
		t.Errorf("Expected theme %s, got %s", ThemeDark, variant)
	}

	// Unknown variants fall back to the default
	settings.SetThemeVariant("sepia")
	if variant := settings.GetThemeVariant(); variant != DefaultThemeVariant {
		t.Errorf("Unknown variant should default to %s, got %s", DefaultThemeVariant, variant)
	}
}

func TestQuality(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if quality := settings.GetQuality(); quality != DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", DefaultQuality, quality)
	}

	// Test setting custom value
	settings.SetQuality(model.QualityWorst)
	if quality := settings.GetQuality(); quality != model.QualityWorst {
		t.Errorf("Expected quality %s, got %s", model.QualityWorst, quality)
	}
}

func TestResolutionCap(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// No cap by default
	if cap := settings.GetResolutionCap(); cap != 0 {
		t.Errorf("Expected no resolution cap, got %d", cap)
	}

	settings.SetResolutionCap(1080)
	if cap := settings.GetResolutionCap(); cap != 1080 {
		t.Errorf("Expected resolution cap 1080, got %d", cap)
	}

	// Test boundary values
	settings.SetResolutionCap(-100) // Should be clamped to 0
	if settings.GetResolutionCap() != 0 {
		t.Error("Negative cap should be clamped to 0")
	}

	settings.SetResolutionCap(99999) // Should be clamped to MaxResolutionCap
	if settings.GetResolutionCap() != MaxResolutionCap {
		t.Errorf("Cap should be clamped to %d", MaxResolutionCap)
	}
}

func TestFilenameTemplate(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	template := settings.GetFilenameTemplate()
	if template != model.DefaultFilenameTemplate {
		t.Errorf("Expected default template %s, got %s", model.DefaultFilenameTemplate, template)
	}

	// Test setting custom value
	customTemplate := "%(uploader)s - %(title)s.%(ext)s"
	settings.SetFilenameTemplate(customTemplate)

	retrievedTemplate := settings.GetFilenameTemplate()
	if retrievedTemplate != customTemplate {
		t.Errorf("Expected template %s, got %s", customTemplate, retrievedTemplate)
	}

	// Test empty template defaults back
	settings.SetFilenameTemplate("")
	retrievedTemplate = settings.GetFilenameTemplate()
	if retrievedTemplate != model.DefaultFilenameTemplate {
		t.Errorf("Empty template should default to %s, got %s", model.DefaultFilenameTemplate, retrievedTemplate)
	}
}

func TestPlaylistLimit(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if limit := settings.GetPlaylistLimit(); limit != 0 {
		t.Errorf("Expected no playlist limit, got %d", limit)
	}

	settings.SetPlaylistLimit(25)
	if limit := settings.GetPlaylistLimit(); limit != 25 {
		t.Errorf("Expected playlist limit 25, got %d", limit)
	}

	settings.SetPlaylistLimit(-1) // Should be clamped to 0
	if settings.GetPlaylistLimit() != 0 {
		t.Error("Negative limit should be clamped to 0")
	}

	settings.SetPlaylistLimit(5000) // Should be clamped to MaxPlaylistLimit
	if settings.GetPlaylistLimit() != MaxPlaylistLimit {
		t.Errorf("Limit should be clamped to %d", MaxPlaylistLimit)
	}
}

func TestVolume(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if volume := settings.GetVolume(); volume != DefaultVolume {
		t.Errorf("Expected default volume %d, got %d", DefaultVolume, volume)
	}

	settings.SetVolume(80)
	if volume := settings.GetVolume(); volume != 80 {
		t.Errorf("Expected volume 80, got %d", volume)
	}

	settings.SetVolume(150) // Should be clamped to 100
	if settings.GetVolume() != 100 {
		t.Error("Volume should be clamped to 100")
	}

	settings.SetVolume(-10) // Should be clamped to 0
	if settings.GetVolume() != 0 {
		t.Error("Volume should be clamped to 0")
	}
}

func TestGetQualityOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetQualityOptions()
	expectedOptions := []model.Quality{model.QualityBest, model.QualityWorst}

	if len(options) != len(expectedOptions) {
		t.Fatalf("Expected %d quality options, got %d", len(expectedOptions), len(options))
	}

	for i, expected := range expectedOptions {
		if options[i] != expected {
			t.Errorf("Quality option %d: expected %s, got %s", i, expected, options[i])
		}
	}
}

func TestDownloadOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetQuality(model.QualityBest)
	settings.SetResolutionCap(720)
	settings.SetCodec("avc1")
	settings.SetContainer("mkv")
	settings.SetAudioOnly(false)
	settings.SetFormatOverride("bv*[height<=480]+ba")
	settings.SetPlaylistEnabled(true)
	settings.SetPlaylistLimit(10)

	opts := settings.DownloadOptions()
	if opts.Quality != model.QualityBest {
		t.Errorf("Expected quality %s, got %s", model.QualityBest, opts.Quality)
	}
	if opts.ResolutionCap != 720 {
		t.Errorf("Expected resolution cap 720, got %d", opts.ResolutionCap)
	}
	if opts.Codec != "avc1" {
		t.Errorf("Expected codec avc1, got %s", opts.Codec)
	}
	if opts.Container != "mkv" {
		t.Errorf("Expected container mkv, got %s", opts.Container)
	}
	if opts.FormatOverride != "bv*[height<=480]+ba" {
		t.Errorf("Unexpected format override %s", opts.FormatOverride)
	}
	if opts.PlaylistLimit != 10 {
		t.Errorf("Expected playlist limit 10, got %d", opts.PlaylistLimit)
	}

	// Playlist disabled: only the first entry of list URLs downloads
	settings.SetPlaylistEnabled(false)
	opts = settings.DownloadOptions()
	if opts.PlaylistLimit != 1 {
		t.Errorf("Expected playlist limit 1 with playlists disabled, got %d", opts.PlaylistLimit)
	}
}
