package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// Extensions of in-flight downloader artifacts, never a final output.
var PartialExtensions = []string{".part", ".ytdl", ".temp"}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory.
func GetHomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// FileReadable verifies that path points at an existing, openable regular file.
func FileReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file is not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file is not readable: %w", err)
	}
	return f.Close()
}

// NextAvailableBase returns a filename base that does not collide with
// existing files in dir. Given base "clip" and an existing clip.mp4 the
// result is "clip_1"; with clip_1.mp4 also present it is "clip_2".
func NextAvailableBase(dir, base string) string {
	if base == "" {
		base = "video"
	}

	matches, err := filepath.Glob(filepath.Join(dir, base+"*.*"))
	if err != nil || len(matches) == 0 {
		return base
	}

	suffixRe := regexp.MustCompile("^" + regexp.QuoteMeta(base) + `_(\d+)$`)
	plainTaken := false
	maxSuffix := 0
	for _, match := range matches {
		stem := strings.TrimSuffix(filepath.Base(match), filepath.Ext(match))
		if stem == base {
			plainTaken = true
			continue
		}
		if m := suffixRe.FindStringSubmatch(stem); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxSuffix {
				maxSuffix = n
			}
		}
	}

	if !plainTaken && maxSuffix == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, maxSuffix+1)
}

// NewestFileWithExt returns the most recently modified file in dir with the
// given extension (e.g. ".mp4"), skipping partial download artifacts.
func NewestFileWithExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		if isPartialFile(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(dir, name)
			newestMod = mod
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no %s file found in %s", ext, dir)
	}
	return newest, nil
}

func isPartialFile(name string) bool {
	for _, ext := range PartialExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if err := FileReadable(filePath); err != nil {
		return err
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		// File selection is not standardized on Linux; open the parent dir.
		return exec.Command(XDGOpenCommand, filepath.Dir(absPath)).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	if err := FileReadable(filePath); err != nil {
		return err
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
