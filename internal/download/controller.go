package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/orcadl/orca/internal/model"
	"github.com/orcadl/orca/internal/platform"
)

// Downloader executable and defaults
const (
	DefaultProgram = "yt-dlp"
	DefaultDestDir = "downloads"
)

// Container defaults
const (
	DefaultVideoContainer = "mp4"
	DefaultAudioContainer = "m4a"
)

// Channel capacity for progress updates; progress is lossy by nature, the
// newest value wins.
const updatesBuffer = 64

var (
	// ErrDownloadInProgress is returned when Start is called while a
	// download is already running.
	ErrDownloadInProgress = errors.New("a download is already in progress")

	// ErrNoOutputFile is returned when the downloader exited cleanly but no
	// output file could be located in the destination folder.
	ErrNoOutputFile = errors.New("no output file produced")

	// ErrCancelled is the terminal error of a user-cancelled download.
	ErrCancelled = errors.New("download cancelled")

	// ErrEmptyURL is returned for a request without a URL.
	ErrEmptyURL = errors.New("no URL provided")
)

// Controller owns the lifecycle of one download at a time: it builds the
// yt-dlp argument list, runs the process, relays parsed progress, and
// resolves the final output path. At most one download is active; terminal
// states reset to Idle on the next Start.
type Controller struct {
	mu     sync.Mutex
	state  model.State
	cancel context.CancelFunc

	program string
	runner  ProcessRunner
	parser  *platform.OutputParser

	updates chan model.ProgressUpdate
	results chan model.DownloadResult
}

// downloadPlan is the prepared invocation for one request.
type downloadPlan struct {
	args []string
	// literalBase is the collision-free filename base when the user typed a
	// plain filename instead of a template, "" otherwise.
	literalBase string
	container   string
}

// NewController creates a new download controller
func NewController() *Controller {
	return &Controller{
		state:   model.StateIdle,
		program: DefaultProgram,
		runner:  platform.NewRunner(),
		parser:  platform.NewOutputParser(),
		updates: make(chan model.ProgressUpdate, updatesBuffer),
		results: make(chan model.DownloadResult, 1),
	}
}

// SetProgram overrides the downloader executable (default yt-dlp)
func (c *Controller) SetProgram(program string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if program != "" {
		c.program = program
	}
}

// SetRunner swaps the process runner; used by tests.
func (c *Controller) SetRunner(runner ProcessRunner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runner = runner
}

// State returns the current lifecycle state.
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates returns the progress stream. Values are dropped, not blocked on,
// when the consumer lags.
func (c *Controller) Updates() <-chan model.ProgressUpdate {
	return c.updates
}

// Results returns the terminal-result stream: exactly one value per Start.
func (c *Controller) Results() <-chan model.DownloadResult {
	return c.results
}

// Start begins a new download. It is rejected with ErrDownloadInProgress
// while another download is running.
func (c *Controller) Start(req model.DownloadRequest, opts model.DownloadOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.IsActive() {
		return ErrDownloadInProgress
	}

	if strings.TrimSpace(req.URL) == "" {
		return ErrEmptyURL
	}
	if req.DestDir == "" {
		req.DestDir = DefaultDestDir
	}
	if err := platform.CreateDirectoryIfNotExists(req.DestDir); err != nil {
		return fmt.Errorf("failed to create destination folder: %w", err)
	}

	plan := buildPlan(req, opts)
	log.Printf("starting download: url=%s dest=%s args=%v", req.URL, req.DestDir, plan.args)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = model.StateRunning

	// Snapshot under the lock; the goroutine must not race SetProgram/SetRunner.
	program, runner := c.program, c.runner

	go c.run(ctx, program, runner, req, opts, plan)
	return nil
}

// Cancel terminates the running download. The state transition to Cancelled
// happens when the child process has actually exited.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.IsActive() {
		return fmt.Errorf("no download to cancel: state is %s", c.state)
	}
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

func (c *Controller) run(ctx context.Context, program string, runner ProcessRunner, req model.DownloadRequest, opts model.DownloadOptions, plan downloadPlan) {
	lastPercent := -1
	playlistTotal := -1
	isPlaylist := platform.IsPlaylistURL(req.URL)

	runErr := runner.Run(ctx, program, plan.args, func(line string) {
		update := c.parser.ParseLine(line)

		if update.HasPercent() {
			// The wrapped tool re-emits percentages rapidly; forward only
			// changes.
			if update.Percent != lastPercent {
				lastPercent = update.Percent
				c.emit(update)
			}
			return
		}

		if isPlaylist && playlistTotal < 0 {
			if total, ok := c.parser.ParsePlaylistTotal(line); ok {
				playlistTotal = total
				status := fmt.Sprintf("Playlist has %d videos. Downloading all.", total)
				if opts.PlaylistLimit > 0 && opts.PlaylistLimit < total {
					status = fmt.Sprintf("Playlist has %d videos. Downloading first %d.", total, opts.PlaylistLimit)
				}
				c.emit(model.ProgressUpdate{Percent: -1, Status: status})
				return
			}
		}

		// Free-form diagnostics would make the status line flicker; pin
		// only the notable phases.
		if c.parser.IsMilestone(line) {
			c.emit(update)
		}
	})

	var result model.DownloadResult
	switch {
	case errors.Is(runErr, context.Canceled):
		result.Err = ErrCancelled
	case runErr != nil:
		result.Err = runErr
	default:
		path, err := c.locateOutput(req, plan)
		if err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrNoOutputFile, err)
		} else {
			result.OutputPath = path
		}
	}

	c.mu.Lock()
	switch {
	case result.Err == nil:
		c.state = model.StateCompleted
	case errors.Is(result.Err, ErrCancelled):
		c.state = model.StateCancelled
	default:
		c.state = model.StateFailed
	}
	c.cancel = nil
	c.mu.Unlock()

	if result.Err != nil {
		log.Printf("download finished with error: %v", result.Err)
	} else {
		log.Printf("download completed: %s", result.OutputPath)
	}
	c.results <- result
}

// locateOutput resolves the downloaded file: the exact expected name when
// the filename was literal, otherwise the newest file with the chosen
// container extension in the destination folder.
func (c *Controller) locateOutput(req model.DownloadRequest, plan downloadPlan) (string, error) {
	ext := "." + plan.container

	if plan.literalBase != "" {
		candidate := filepath.Join(req.DestDir, plan.literalBase+ext)
		if err := platform.FileReadable(candidate); err == nil {
			return candidate, nil
		}
	}

	return platform.NewestFileWithExt(req.DestDir, ext)
}

// emit forwards a progress update without ever blocking the reader loop.
func (c *Controller) emit(update model.ProgressUpdate) {
	select {
	case c.updates <- update:
	default:
	}
}

// buildPlan constructs the yt-dlp argument list for a request.
func buildPlan(req model.DownloadRequest, opts model.DownloadOptions) downloadPlan {
	container := resolveContainer(opts)

	template := opts.Template()
	var literalBase string
	if opts.IsLiteralTemplate() {
		base := strings.TrimSuffix(filepath.Base(template), filepath.Ext(template))
		literalBase = platform.NextAvailableBase(req.DestDir, base)
		template = literalBase + ".%(ext)s"
	} else if !strings.Contains(template, "%(ext)") {
		template += ".%(ext)s"
	}

	args := []string{"--newline", "-o", filepath.Join(req.DestDir, template)}

	switch {
	case opts.FormatOverride != "":
		args = append(args, "-f", opts.FormatOverride)
	case opts.AudioOnly:
		args = append(args, "-f", "ba/b")
	default:
		selector := "bv*+ba/b"
		if opts.Quality == model.QualityWorst {
			selector = "bv*+ba/b[quality=lowest]"
		}
		if opts.ResolutionCap > 0 {
			selector += fmt.Sprintf("[height<=%d]", opts.ResolutionCap)
		}
		if opts.Codec != "" {
			selector += fmt.Sprintf("[vcodec*=%s]", opts.Codec)
		}
		args = append(args, "-f", selector)
	}

	if opts.AudioOnly {
		args = append(args, "--extract-audio", "--audio-format", container)
	} else {
		args = append(args, "--merge-output-format", container)
	}

	if platform.IsPlaylistURL(req.URL) && opts.PlaylistLimit > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(opts.PlaylistLimit))
	}

	// Twitter/X drops connections aggressively; retry harder there.
	if strings.Contains(req.URL, "x.com/") || strings.Contains(req.URL, "twitter.com/") {
		args = append(args,
			"--socket-timeout", "30",
			"--retries", "10",
			"--fragment-retries", "10",
			"--ignore-errors",
		)
	}

	args = append(args, req.URL)

	return downloadPlan{
		args:        args,
		literalBase: literalBase,
		container:   container,
	}
}

func resolveContainer(opts model.DownloadOptions) string {
	if opts.Container != "" {
		return opts.Container
	}
	if opts.AudioOnly {
		return DefaultAudioContainer
	}
	return DefaultVideoContainer
}
