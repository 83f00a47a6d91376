package preview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/orcadl/orca/internal/platform"
)

// Playback executables. Preview never decodes media in-process; it drives
// the same external toolchain the rest of the app wraps.
const (
	FFplayCommand  = "ffplay"
	FFprobeCommand = "ffprobe"
	FFmpegCommand  = "ffmpeg"
)

// ffprobe invocation constants
const (
	ProbeLogLevel     = "error"
	ProbeShowEntries  = "format=duration"
	ProbeOutputFormat = "csv=p=0"
)

// Defaults
const (
	DefaultVolume     = 60
	PosterMaxWidth    = 480
	WindowTitle       = "Orca Preview"
	PosterFilePattern = "orca-poster-*.png"
)

// ErrFileUnreadable is returned when the file to preview does not exist or
// cannot be opened.
var ErrFileUnreadable = errors.New("file is not readable")

// ErrNothingLoaded is returned by transport controls before Load succeeded.
var ErrNothingLoaded = errors.New("no file loaded")

// Player previews a local media file through an ffplay child process.
// Transport control is argv-only: pause and seek remember an offset and
// respawn ffplay there, so no in-process decoding or IPC is needed.
type Player struct {
	mu sync.Mutex

	path     string
	duration time.Duration

	offset    time.Duration // where the current/next playback starts
	startedAt time.Time     // zero when not playing

	volume int
	muted  bool

	cmd    *exec.Cmd
	cancel context.CancelFunc

	onError func(error) // playback failures, never fatal to the shell
}

// NewPlayer creates a new preview player
func NewPlayer() *Player {
	return &Player{volume: DefaultVolume}
}

// SetErrorCallback sets the callback invoked on asynchronous playback errors.
func (p *Player) SetErrorCallback(callback func(error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = callback
}

// Load validates the file and probes its duration. Any previous playback
// stops. A file that exists but cannot be probed still loads; the seek
// slider just has no range.
func (p *Player) Load(path string) error {
	if err := platform.FileReadable(path); err != nil {
		return fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}

	duration, err := probeDuration(path)
	if err != nil {
		log.Printf("could not probe duration of %s: %v", path, err)
		duration = 0
	}

	p.mu.Lock()
	p.stopLocked()
	p.path = path
	p.duration = duration
	p.offset = 0
	p.mu.Unlock()
	return nil
}

// Path returns the currently loaded file, "" when none.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Duration returns the probed duration, 0 when unknown.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// IsPlaying reports whether an ffplay child is currently running.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	pos := p.offset
	if !p.startedAt.IsZero() {
		pos += time.Since(p.startedAt)
	}
	if p.duration > 0 && pos > p.duration {
		pos = p.duration
	}
	return pos
}

// Play starts (or resumes) playback at the current offset.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path == "" {
		return ErrNothingLoaded
	}
	if p.cmd != nil {
		return nil // already playing
	}

	args := BuildPlayArgs(p.path, p.offset, p.effectiveVolumeLocked())

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, FFplayCommand, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", platform.ErrExecutableNotFound, FFplayCommand)
		}
		return fmt.Errorf("failed to start %s: %w", FFplayCommand, err)
	}

	p.cmd = cmd
	p.cancel = cancel
	p.startedAt = time.Now()

	go p.watch(ctx, cmd)
	return nil
}

// watch reaps the ffplay child and folds its exit back into player state.
func (p *Player) watch(ctx context.Context, cmd *exec.Cmd) {
	err := cmd.Wait()

	p.mu.Lock()
	if p.cmd != cmd {
		// Superseded by a later Play/Seek; nothing to fold back.
		p.mu.Unlock()
		return
	}
	cancelled := ctx.Err() != nil
	if cancelled {
		// Pause/Seek/Stop already updated the offset before killing.
	} else if err == nil {
		// Played through to the end (-autoexit).
		p.offset = p.duration
	} else {
		p.offset = p.positionLocked()
	}
	p.cmd = nil
	p.cancel = nil
	p.startedAt = time.Time{}
	callback := p.onError
	p.mu.Unlock()

	if err != nil && !cancelled && callback != nil {
		callback(fmt.Errorf("playback failed: %w", err))
	}
}

// Pause stops the child but keeps the position for resume.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil {
		return
	}
	p.offset = p.positionLocked()
	p.killLocked()
}

// Seek moves the playback position; when playing, playback restarts there.
func (p *Player) Seek(position time.Duration) error {
	p.mu.Lock()
	if p.path == "" {
		p.mu.Unlock()
		return ErrNothingLoaded
	}
	if position < 0 {
		position = 0
	}
	if p.duration > 0 && position > p.duration {
		position = p.duration
	}
	wasPlaying := p.cmd != nil
	if wasPlaying {
		p.killLocked()
	}
	p.offset = position
	p.mu.Unlock()

	if wasPlaying {
		return p.Play()
	}
	return nil
}

// Stop terminates playback and rewinds to the beginning.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	p.killLocked()
	p.offset = 0
}

func (p *Player) killLocked() {
	if p.cancel != nil {
		p.cancel()
	}
	p.cmd = nil
	p.cancel = nil
	p.startedAt = time.Time{}
}

// SetVolume sets the playback volume (0-100). Applies from the next spawn;
// a running child keeps its volume until paused or sought.
func (p *Player) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
}

// Mute silences playback without losing the volume setting.
func (p *Player) Mute(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

func (p *Player) effectiveVolumeLocked() int {
	if p.muted {
		return 0
	}
	return p.volume
}

// BuildPlayArgs builds the ffplay argument list for a file, start offset,
// and volume.
func BuildPlayArgs(path string, offset time.Duration, volume int) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-autoexit",
		"-window_title", WindowTitle,
		"-volume", strconv.Itoa(volume),
	}
	if offset > 0 {
		args = append(args, "-ss", formatSeconds(offset))
	}
	return append(args, path)
}

// ExtractPoster renders a single frame of the file into a temporary PNG for
// the preview pane. The caller owns the returned file.
func ExtractPoster(path string) (string, error) {
	if err := platform.FileReadable(path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}

	out, err := os.CreateTemp("", PosterFilePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create poster file: %w", err)
	}
	out.Close()

	args := BuildPosterArgs(path, out.Name())
	if err := exec.Command(FFmpegCommand, args...).Run(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to extract poster frame: %w", err)
	}
	return out.Name(), nil
}

// BuildPosterArgs builds the ffmpeg argument list for poster extraction.
func BuildPosterArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale='min(%d,iw)':-2", PosterMaxWidth),
		outputPath,
	}
}

// probeDuration gets the media duration using ffprobe.
func probeDuration(path string) (time.Duration, error) {
	cmd := exec.Command(FFprobeCommand, "-v", ProbeLogLevel, "-show_entries", ProbeShowEntries, "-of", ProbeOutputFormat, path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return parseProbeDuration(string(output))
}

// parseProbeDuration parses ffprobe csv output ("12.345") into a duration.
func parseProbeDuration(output string) (time.Duration, error) {
	durationStr := strings.TrimSpace(output)
	seconds, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", durationStr, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// formatSeconds renders an offset as fractional seconds for -ss.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
