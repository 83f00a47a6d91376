package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/orcadl/orca/internal/model"
)

// Timeout constants
const (
	DefaultProbeTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Default values
const (
	DefaultPlaylistTitle = "Untitled Playlist"
	PlaylistTitleSuffix  = " Playlist"
	MinCommonPrefix      = 10
)

// Watch URL template for playlist entries
const (
	WatchURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistProber fetches playlist metadata before a download starts, so the
// UI can show the entry count and warn when the requested limit exceeds it.
type PlaylistProber struct {
	timeout time.Duration
}

// NewPlaylistProber creates a new playlist prober
func NewPlaylistProber() *PlaylistProber {
	return &PlaylistProber{
		timeout: DefaultProbeTimeout,
	}
}

// SetTimeout sets the timeout for probe operations
func (p *PlaylistProber) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether the URL points at a playlist.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// Probe fetches the entries of a playlist URL.
func (p *PlaylistProber) Probe(ctx context.Context, url string) (*model.Playlist, error) {
	if !IsPlaylistURL(url) {
		return nil, fmt.Errorf("not a playlist URL: %s", url)
	}

	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	entries, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	items := make([]model.PlaylistItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, model.PlaylistItem{
			ID:    entry.VideoID,
			Title: entry.Title,
			URL:   fmt.Sprintf(WatchURLTemplate, entry.VideoID),
		})
	}

	return &model.Playlist{
		ID:    playlistID,
		Title: deriveTitle(items),
		URL:   url,
		Items: items,
	}, nil
}

// ExtractPlaylistID extracts the playlist ID from various URL formats.
func ExtractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	id := parts[1]
	if strings.Contains(id, ParamSeparator) {
		id = strings.Split(id, ParamSeparator)[0]
	}
	return id
}

// deriveTitle guesses a playlist title from its entries: the shared prefix
// of the first two titles when it is long enough, otherwise the first title.
func deriveTitle(items []model.PlaylistItem) string {
	if len(items) == 0 {
		return DefaultPlaylistTitle
	}
	if len(items) > 1 {
		prefix := commonPrefix(items[0].Title, items[1].Title)
		if len(prefix) > MinCommonPrefix {
			return strings.TrimSpace(prefix) + PlaylistTitleSuffix
		}
	}
	return items[0].Title + PlaylistTitleSuffix
}

// commonPrefix finds the common prefix between two strings
func commonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
