package ui

import (
	"errors"
	"os"
	"sync"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/orcadl/orca/internal/preview"
)

func newTestPane(t *testing.T) *PreviewPane {
	t.Helper()
	test.NewApp()
	return NewPreviewPane(preview.NewPlayer())
}

func TestPreviewPaneConcurrentPlaybackErrors(t *testing.T) {
	pp := newTestPane(t)
	pp.startTicker()

	// Playback errors arrive from the player's watch goroutine while the
	// UI thread may be stopping the ticker at the same time. A double
	// close of the stop channel would panic here.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pp.handlePlaybackError(errors.New("playback failed"))
		}()
	}
	go pp.stopTicker()
	wg.Wait()

	pp.tickerMu.Lock()
	defer pp.tickerMu.Unlock()
	if pp.ticker != nil {
		t.Error("ticker still running after playback errors")
	}
	if pp.tickerStop != nil {
		t.Error("stop channel not cleared after playback errors")
	}
}

func TestPreviewPaneStopTickerIdempotent(t *testing.T) {
	pp := newTestPane(t)

	// Never started
	pp.stopTicker()

	pp.startTicker()
	pp.stopTicker()
	pp.stopTicker()
}

func TestPreviewPaneSetPosterRemovesPrevious(t *testing.T) {
	pp := newTestPane(t)

	first, err := os.CreateTemp(t.TempDir(), "poster-*.png")
	if err != nil {
		t.Fatal(err)
	}
	first.Close()
	second, err := os.CreateTemp(t.TempDir(), "poster-*.png")
	if err != nil {
		t.Fatal(err)
	}
	second.Close()

	pp.setPoster(first.Name())
	pp.setPoster(second.Name())

	if _, err := os.Stat(first.Name()); !os.IsNotExist(err) {
		t.Errorf("previous poster %s not removed", first.Name())
	}
	if _, err := os.Stat(second.Name()); err != nil {
		t.Errorf("current poster %s missing: %v", second.Name(), err)
	}
	if pp.poster.File != second.Name() {
		t.Errorf("poster file = %q, want %q", pp.poster.File, second.Name())
	}
}
