package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestFileReadable(t *testing.T) {
	tempDir := t.TempDir()

	existing := filepath.Join(tempDir, "clip.mp4")
	if err := os.WriteFile(existing, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := FileReadable(existing); err != nil {
		t.Errorf("Expected readable file, got error: %v", err)
	}

	if err := FileReadable(filepath.Join(tempDir, "missing.mp4")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}

	if err := FileReadable(tempDir); err == nil {
		t.Error("Expected error for directory path, got nil")
	}
}

func TestNextAvailableBase(t *testing.T) {
	tempDir := t.TempDir()

	// Empty directory keeps the base untouched.
	if got := NextAvailableBase(tempDir, "clip"); got != "clip" {
		t.Errorf("Expected 'clip', got %q", got)
	}

	// Existing clip.mp4 pushes to clip_1.
	mustWrite(t, filepath.Join(tempDir, "clip.mp4"))
	if got := NextAvailableBase(tempDir, "clip"); got != "clip_1" {
		t.Errorf("Expected 'clip_1', got %q", got)
	}

	// Existing clip_3.mp4 pushes past the highest suffix.
	mustWrite(t, filepath.Join(tempDir, "clip_3.mp4"))
	if got := NextAvailableBase(tempDir, "clip"); got != "clip_4" {
		t.Errorf("Expected 'clip_4', got %q", got)
	}

	// Empty base falls back to "video".
	if got := NextAvailableBase(tempDir, ""); got != "video" {
		t.Errorf("Expected 'video', got %q", got)
	}
}

func TestNewestFileWithExt(t *testing.T) {
	tempDir := t.TempDir()

	older := filepath.Join(tempDir, "older.mp4")
	newer := filepath.Join(tempDir, "newer.mp4")
	mustWrite(t, older)
	mustWrite(t, newer)
	mustWrite(t, filepath.Join(tempDir, "audio.m4a"))
	mustWrite(t, filepath.Join(tempDir, "partial.mp4.part"))

	// Make mtimes deterministic.
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("Failed to set mtime: %v", err)
	}

	got, err := NewestFileWithExt(tempDir, ".mp4")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != newer {
		t.Errorf("Expected %q, got %q", newer, got)
	}

	if _, err := NewestFileWithExt(tempDir, ".webm"); err == nil {
		t.Error("Expected error when no file matches, got nil")
	}

	if _, err := NewestFileWithExt(filepath.Join(tempDir, "missing"), ".mp4"); err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
}
