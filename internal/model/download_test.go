package model

import "testing"

func TestDownloadOptions_Template(t *testing.T) {
	tests := []struct {
		name     string
		template string
		expected string
	}{
		{"empty uses default", "", DefaultFilenameTemplate},
		{"whitespace uses default", "   ", DefaultFilenameTemplate},
		{"custom preserved", "clip.%(ext)s", "clip.%(ext)s"},
		{"trimmed", " clip.mp4 ", "clip.mp4"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DownloadOptions{FilenameTemplate: test.template}
			if got := opts.Template(); got != test.expected {
				t.Errorf("Template() = %q, expected %q", got, test.expected)
			}
		})
	}
}

func TestDownloadOptions_IsLiteralTemplate(t *testing.T) {
	tests := []struct {
		template string
		expected bool
	}{
		{"", false}, // default template has placeholders
		{"%(title)s.%(ext)s", false},
		{"clip.mp4", true},
		{"my video", true},
		{"prefix-%(id)s", false},
	}

	for _, test := range tests {
		opts := DownloadOptions{FilenameTemplate: test.template}
		if got := opts.IsLiteralTemplate(); got != test.expected {
			t.Errorf("IsLiteralTemplate(%q) = %v, expected %v", test.template, got, test.expected)
		}
	}
}

func TestProgressUpdate_HasPercent(t *testing.T) {
	withPercent := ProgressUpdate{Percent: 45, Status: ""}
	if !withPercent.HasPercent() {
		t.Error("expected HasPercent() to be true for Percent=45")
	}

	passthrough := ProgressUpdate{Percent: -1, Status: "Merging formats into output.mp4"}
	if passthrough.HasPercent() {
		t.Error("expected HasPercent() to be false for Percent=-1")
	}
}

func TestPlaylist_Size(t *testing.T) {
	playlist := &Playlist{
		ID: "PLtest",
		Items: []PlaylistItem{
			{ID: "a", Title: "First"},
			{ID: "b", Title: "Second"},
		},
	}

	if playlist.Size() != 2 {
		t.Errorf("Size() = %d, expected 2", playlist.Size())
	}

	empty := &Playlist{}
	if empty.Size() != 0 {
		t.Errorf("Size() = %d, expected 0", empty.Size())
	}
}
