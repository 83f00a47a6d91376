package platform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/orcadl/orca/internal/model"
)

// Markers of notable yt-dlp output lines
const (
	DestinationMarker = "Destination:"
	MergingMarker     = "Merging formats into"
)

// yt-dlp output is free-form text, not a stable protocol. These patterns
// match the format of current releases and degrade to passthrough when
// they stop matching.
var (
	downloadPercentRe = regexp.MustCompile(`\[download\]\s+(\d{1,3}(?:\.\d+)?)%`)
	playlistOfRe      = regexp.MustCompile(`of\s+(\d+)`)
	playlistCountRe   = regexp.MustCompile(`(?i)Downloading\s+(\d+)\s+(?:videos|items)`)
)

// OutputParser extracts progress percentages and status text from raw
// yt-dlp output lines. Parsing is best effort: a line that matches no
// known pattern passes through unchanged as status text.
type OutputParser struct{}

// NewOutputParser creates a new output parser
func NewOutputParser() *OutputParser {
	return &OutputParser{}
}

// ParseLine parses one raw output line. Percent is -1 when the line carried
// no recognizable percentage.
func (p *OutputParser) ParseLine(line string) model.ProgressUpdate {
	line = strings.TrimSpace(line)
	update := model.ProgressUpdate{Percent: -1, Status: line}

	if m := downloadPercentRe.FindStringSubmatch(line); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil && value <= 100 {
			update.Percent = int(value)
		}
	}

	return update
}

// IsMilestone reports whether the line marks a notable download phase
// (destination chosen, formats being merged) worth pinning in the status.
func (p *OutputParser) IsMilestone(line string) bool {
	return strings.Contains(line, DestinationMarker) || strings.Contains(line, MergingMarker)
}

// ParsePlaylistTotal tries to extract the total number of playlist entries
// from a line such as "[download] Downloading item 3 of 25" or
// "[youtube:tab] Playlist X: Downloading 25 items".
func (p *OutputParser) ParsePlaylistTotal(line string) (int, bool) {
	if m := playlistOfRe.FindStringSubmatch(line); m != nil {
		if total, err := strconv.Atoi(m[1]); err == nil {
			return total, true
		}
	}
	if m := playlistCountRe.FindStringSubmatch(line); m != nil {
		if total, err := strconv.Atoi(m[1]); err == nil {
			return total, true
		}
	}
	return 0, false
}
