package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/orcadl/orca/internal/preview"
)

// formatClock formats a duration as mm:ss
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf(ClockFormat, total/60, total%60)
}

// PreviewPane is the inline preview widget shown once a download finishes.
// It renders a poster frame of the file and offers transport controls
// backed by the preview player.
type PreviewPane struct {
	widget.BaseWidget

	player *preview.Player

	// UI components
	poster     *canvas.Image
	fileLabel  *widget.Label
	timeLabel  *widget.Label
	seekSlider *widget.Slider
	playBtn    *widget.Button
	stopBtn    *widget.Button
	muteBtn    *widget.Button
	volume     *widget.Slider

	// Suppresses seek callbacks while the ticker moves the slider
	updatingSlider bool

	// The ticker is started from the UI thread but stopped from either the
	// UI thread or the player's watch goroutine on playback errors.
	tickerMu   sync.Mutex
	ticker     *time.Ticker
	tickerStop chan struct{}

	onError      func(error)
	onVolume     func(int)
	onMuteToggle func(bool)
}

// NewPreviewPane creates a preview pane wired to the given player
func NewPreviewPane(player *preview.Player) *PreviewPane {
	pp := &PreviewPane{player: player}
	pp.ExtendBaseWidget(pp)
	pp.createUI()
	player.SetErrorCallback(pp.handlePlaybackError)
	return pp
}

// SetCallbacks sets the pane callbacks
func (pp *PreviewPane) SetCallbacks(onError func(error), onVolume func(int), onMuteToggle func(bool)) {
	pp.onError = onError
	pp.onVolume = onVolume
	pp.onMuteToggle = onMuteToggle
}

// createUI creates the UI components
func (pp *PreviewPane) createUI() {
	pp.poster = canvas.NewImageFromResource(nil)
	pp.poster.FillMode = canvas.ImageFillContain
	pp.poster.SetMinSize(fyne.NewSize(PosterMinWidth, PosterMinHeight))

	pp.fileLabel = widget.NewLabel(DashPlaceholder)
	pp.fileLabel.TextStyle = fyne.TextStyle{Bold: true}
	pp.fileLabel.Truncation = fyne.TextTruncateEllipsis

	pp.timeLabel = widget.NewLabel(formatClock(0) + PositionSeparator + formatClock(0))

	pp.seekSlider = widget.NewSlider(0, 1)
	pp.seekSlider.Step = 0.1
	pp.seekSlider.OnChangeEnded = pp.onSeek
	pp.seekSlider.Disable()

	pp.playBtn = widget.NewButton(IconPlay, pp.onPlayPause)
	pp.playBtn.Disable()
	pp.stopBtn = widget.NewButton(IconStop, pp.onStop)
	pp.stopBtn.Disable()

	pp.muteBtn = widget.NewButton(IconVolume, pp.onMute)
	pp.volume = widget.NewSlider(0, 100)
	pp.volume.Value = preview.DefaultVolume
	pp.volume.OnChangeEnded = func(value float64) {
		pp.player.SetVolume(int(value))
		if pp.onVolume != nil {
			pp.onVolume(int(value))
		}
	}
}

// Load shows a file in the pane: poster frame, duration, enabled controls.
func (pp *PreviewPane) Load(path string) error {
	if err := pp.player.Load(path); err != nil {
		return err
	}

	fyne.Do(func() {
		pp.fileLabel.SetText(filepath.Base(path))

		duration := pp.player.Duration()
		if duration > 0 {
			pp.seekSlider.Max = duration.Seconds()
			pp.seekSlider.Enable()
		} else {
			pp.seekSlider.Max = 1
			pp.seekSlider.Disable()
		}
		pp.setSliderValue(0)
		pp.timeLabel.SetText(formatClock(0) + PositionSeparator + formatClock(duration))

		pp.playBtn.SetText(IconPlay)
		pp.playBtn.Enable()
		pp.stopBtn.Enable()
		pp.Refresh()
	})

	// Poster extraction can take a moment; render it off the UI thread.
	go func() {
		posterPath, err := preview.ExtractPoster(path)
		if err != nil {
			log.Printf("no poster frame for %s: %v", path, err)
			return
		}
		fyne.Do(func() {
			pp.setPoster(posterPath)
		})
	}()

	return nil
}

// setPoster swaps the poster image, deleting the previous temporary frame
// so posters do not pile up in the temp dir across downloads.
func (pp *PreviewPane) setPoster(path string) {
	if old := pp.poster.File; old != "" && old != path {
		os.Remove(old)
	}
	pp.poster.File = path
	pp.poster.Refresh()
}

// SetVolume reflects a persisted volume into the pane and player
func (pp *PreviewPane) SetVolume(volume int) {
	pp.player.SetVolume(volume)
	pp.volume.Value = float64(volume)
	pp.volume.Refresh()
}

// SetMuted reflects a persisted mute state into the pane and player
func (pp *PreviewPane) SetMuted(muted bool) {
	pp.player.Mute(muted)
	pp.refreshMuteButton(muted)
}

func (pp *PreviewPane) onPlayPause() {
	if pp.player.IsPlaying() {
		pp.player.Pause()
		pp.playBtn.SetText(IconPlay)
		pp.stopTicker()
		return
	}

	if err := pp.player.Play(); err != nil {
		pp.handlePlaybackError(err)
		return
	}
	pp.playBtn.SetText(IconPause)
	pp.startTicker()
}

func (pp *PreviewPane) onStop() {
	pp.player.Stop()
	pp.stopTicker()
	fyne.Do(func() {
		pp.playBtn.SetText(IconPlay)
		pp.setSliderValue(0)
		pp.updateTimeLabel()
	})
}

func (pp *PreviewPane) onSeek(seconds float64) {
	if pp.updatingSlider {
		return
	}
	if err := pp.player.Seek(time.Duration(seconds * float64(time.Second))); err != nil {
		pp.handlePlaybackError(err)
		return
	}
	pp.updateTimeLabel()
}

func (pp *PreviewPane) onMute() {
	muted := pp.muteBtn.Text == IconVolume
	pp.player.Mute(muted)
	pp.refreshMuteButton(muted)
	if pp.onMuteToggle != nil {
		pp.onMuteToggle(muted)
	}
}

func (pp *PreviewPane) refreshMuteButton(muted bool) {
	if muted {
		pp.muteBtn.SetText(IconMuted)
	} else {
		pp.muteBtn.SetText(IconVolume)
	}
}

// startTicker follows playback position while the player runs
func (pp *PreviewPane) startTicker() {
	pp.stopTicker()

	pp.tickerMu.Lock()
	pp.ticker = time.NewTicker(PositionTickInterval)
	pp.tickerStop = make(chan struct{})
	ticker, stop := pp.ticker, pp.tickerStop
	pp.tickerMu.Unlock()

	go func(ticker *time.Ticker, stop chan struct{}) {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				playing := pp.player.IsPlaying()
				fyne.Do(func() {
					pp.setSliderValue(pp.player.Position().Seconds())
					pp.updateTimeLabel()
					if !playing {
						pp.playBtn.SetText(IconPlay)
					}
				})
				if !playing {
					return
				}
			}
		}
	}(ticker, stop)
}

// stopTicker is idempotent and safe to call from any goroutine.
func (pp *PreviewPane) stopTicker() {
	pp.tickerMu.Lock()
	defer pp.tickerMu.Unlock()
	if pp.ticker == nil {
		return
	}
	pp.ticker.Stop()
	close(pp.tickerStop)
	pp.ticker = nil
	pp.tickerStop = nil
}

func (pp *PreviewPane) setSliderValue(seconds float64) {
	pp.updatingSlider = true
	pp.seekSlider.SetValue(seconds)
	pp.updatingSlider = false
}

func (pp *PreviewPane) updateTimeLabel() {
	pp.timeLabel.SetText(formatClock(pp.player.Position()) + PositionSeparator + formatClock(pp.player.Duration()))
}

func (pp *PreviewPane) handlePlaybackError(err error) {
	log.Printf("preview playback error: %v", err)
	pp.stopTicker()
	fyne.Do(func() {
		pp.playBtn.SetText(IconPlay)
	})
	if pp.onError != nil {
		pp.onError(err)
	}
}

// CreateRenderer creates the widget renderer
func (pp *PreviewPane) CreateRenderer() fyne.WidgetRenderer {
	return &previewPaneRenderer{pane: pp}
}

// previewPaneRenderer renders the preview pane widget
type previewPaneRenderer struct {
	pane   *PreviewPane
	layout *fyne.Container
}

// Layout arranges the components
func (r *previewPaneRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *previewPaneRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	return r.layout.MinSize()
}

// Refresh refreshes the renderer
func (r *previewPaneRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *previewPaneRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *previewPaneRenderer) Destroy() {
	r.pane.stopTicker()
}

// createLayout creates the main layout
func (r *previewPaneRenderer) createLayout() {
	pp := r.pane

	transport := container.NewHBox(
		pp.playBtn,
		pp.stopBtn,
		pp.timeLabel,
	)

	volumeRow := container.NewBorder(nil, nil, pp.muteBtn, nil, pp.volume)
	controls := container.NewBorder(nil, nil, transport, nil, volumeRow)

	r.layout = container.NewVBox(
		pp.fileLabel,
		pp.poster,
		pp.seekSlider,
		controls,
		widget.NewSeparator(),
	)
}
