package model

import (
	"strings"
	"time"
)

// Quality selects the overall quality preference for a download
type Quality string

const (
	QualityBest  Quality = "best"
	QualityWorst Quality = "worst"
)

// DefaultFilenameTemplate is the yt-dlp output template used when the user
// did not enter one.
const DefaultFilenameTemplate = "%(title)s.%(ext)s"

// DownloadRequest describes a single download: a URL and the folder the
// result should land in. Immutable once a download starts.
type DownloadRequest struct {
	URL     string
	DestDir string
}

// DownloadOptions carries the user-tunable knobs that shape the yt-dlp
// command line. The zero value means "best quality mp4, full playlist,
// default template".
type DownloadOptions struct {
	Quality          Quality
	ResolutionCap    int    // max video height in pixels, 0 = no cap
	Codec            string // vcodec substring (av01, avc1, hev1), "" = any
	Container        string // output container, mp4/mkv/webm or m4a/mp3/opus
	AudioOnly        bool
	FormatOverride   string // raw -f selector, bypasses the derived one
	FilenameTemplate string
	PlaylistLimit    int // stop after N playlist entries, 0 = all
}

// Template returns the filename template with the default applied.
func (o DownloadOptions) Template() string {
	t := strings.TrimSpace(o.FilenameTemplate)
	if t == "" {
		return DefaultFilenameTemplate
	}
	return t
}

// IsLiteralTemplate reports whether the template contains no yt-dlp
// placeholders, i.e. the user typed a plain filename.
func (o DownloadOptions) IsLiteralTemplate() bool {
	return !strings.Contains(o.Template(), "%(")
}

// ProgressUpdate is one parsed line of downloader output. Percent is -1
// when the line carried no percentage; Status is then the raw line.
type ProgressUpdate struct {
	Percent int
	Status  string
}

// HasPercent reports whether a percentage was extracted from the line.
func (p ProgressUpdate) HasPercent() bool {
	return p.Percent >= 0
}

// DownloadResult is the single terminal outcome of a download request.
type DownloadResult struct {
	OutputPath string
	Err        error
}

// ConvertTask represents a single ffmpeg conversion of a downloaded file
type ConvertTask struct {
	ID         string
	InputPath  string
	OutputPath string
	State      State
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// PlaylistItem is one entry of a probed playlist
type PlaylistItem struct {
	ID    string
	Title string
	URL   string
}

// Playlist holds the result of probing a playlist URL before download
type Playlist struct {
	ID    string
	Title string
	URL   string
	Items []PlaylistItem
}

// Size returns the number of entries in the playlist.
func (p *Playlist) Size() int {
	return len(p.Items)
}
