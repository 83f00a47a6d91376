package preview

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer()
	if p == nil {
		t.Fatal("NewPlayer returned nil")
	}
	if p.Path() != "" {
		t.Errorf("expected no path, got %q", p.Path())
	}
	if p.IsPlaying() {
		t.Error("new player should not be playing")
	}
	if p.Position() != 0 {
		t.Errorf("expected position 0, got %v", p.Position())
	}
}

func TestLoadMissingFile(t *testing.T) {
	p := NewPlayer()
	err := p.Load(filepath.Join(t.TempDir(), "nope.mp4"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrFileUnreadable) {
		t.Errorf("expected ErrFileUnreadable, got %v", err)
	}
}

func TestPlayWithoutLoad(t *testing.T) {
	p := NewPlayer()
	if err := p.Play(); !errors.Is(err, ErrNothingLoaded) {
		t.Errorf("expected ErrNothingLoaded, got %v", err)
	}
	if err := p.Seek(time.Second); !errors.Is(err, ErrNothingLoaded) {
		t.Errorf("expected ErrNothingLoaded from Seek, got %v", err)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	p := NewPlayer()

	p.SetVolume(150)
	if got := p.effectiveVolumeLocked(); got != 100 {
		t.Errorf("expected volume clamped to 100, got %d", got)
	}

	p.SetVolume(-5)
	if got := p.effectiveVolumeLocked(); got != 0 {
		t.Errorf("expected volume clamped to 0, got %d", got)
	}

	p.SetVolume(40)
	p.Mute(true)
	if got := p.effectiveVolumeLocked(); got != 0 {
		t.Errorf("expected muted volume 0, got %d", got)
	}

	p.Mute(false)
	if got := p.effectiveVolumeLocked(); got != 40 {
		t.Errorf("expected volume 40 after unmute, got %d", got)
	}
}

func TestBuildPlayArgs(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		offset time.Duration
		volume int
		want   []string
	}{
		{
			name:   "from start",
			path:   "/tmp/clip.mp4",
			offset: 0,
			volume: 60,
			want: []string{
				"-hide_banner", "-loglevel", "error", "-autoexit",
				"-window_title", WindowTitle, "-volume", "60",
				"/tmp/clip.mp4",
			},
		},
		{
			name:   "with offset",
			path:   "/tmp/clip.mp4",
			offset: 90*time.Second + 500*time.Millisecond,
			volume: 0,
			want: []string{
				"-hide_banner", "-loglevel", "error", "-autoexit",
				"-window_title", WindowTitle, "-volume", "0",
				"-ss", "90.500",
				"/tmp/clip.mp4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPlayArgs(tt.path, tt.offset, tt.volume)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d args, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("arg %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestBuildPosterArgs(t *testing.T) {
	args := BuildPosterArgs("/in/video.mkv", "/out/poster.png")

	if args[len(args)-1] != "/out/poster.png" {
		t.Errorf("expected output path last, got %q", args[len(args)-1])
	}

	var hasInput, hasFrames bool
	for i, arg := range args {
		if arg == "-i" && i+1 < len(args) && args[i+1] == "/in/video.mkv" {
			hasInput = true
		}
		if arg == "-frames:v" && i+1 < len(args) && args[i+1] == "1" {
			hasFrames = true
		}
	}
	if !hasInput {
		t.Error("expected -i with input path")
	}
	if !hasFrames {
		t.Error("expected -frames:v 1")
	}
}

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    time.Duration
		wantErr bool
	}{
		{name: "plain seconds", output: "12.5\n", want: 12500 * time.Millisecond},
		{name: "whole seconds", output: "60", want: 60 * time.Second},
		{name: "garbage", output: "N/A", wantErr: true},
		{name: "empty", output: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeDuration(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.output)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSeekClampsToDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("not really a video"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPlayer()
	// Bypass Load so the test does not depend on ffprobe being installed.
	p.path = path
	p.duration = 10 * time.Second

	if err := p.Seek(25 * time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Position(); got != 10*time.Second {
		t.Errorf("expected position clamped to 10s, got %v", got)
	}

	if err := p.Seek(-3 * time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Position(); got != 0 {
		t.Errorf("expected position clamped to 0, got %v", got)
	}
}

func TestStopRewinds(t *testing.T) {
	p := NewPlayer()
	p.path = "/tmp/clip.mp4"
	p.duration = 10 * time.Second
	p.offset = 4 * time.Second

	p.Stop()
	if got := p.Position(); got != 0 {
		t.Errorf("expected position 0 after Stop, got %v", got)
	}
	if p.IsPlaying() {
		t.Error("player should not be playing after Stop")
	}
}
