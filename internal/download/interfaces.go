package download

import (
	"context"

	"github.com/orcadl/orca/internal/model"
	"github.com/orcadl/orca/internal/platform"
)

// Downloader defines the interface for the download controller.
type Downloader interface {
	Start(req model.DownloadRequest, opts model.DownloadOptions) error
	Cancel() error
	State() model.State
	Updates() <-chan model.ProgressUpdate
	Results() <-chan model.DownloadResult

	// SetProgram overrides the downloader executable (default yt-dlp)
	SetProgram(program string)
}

// ProcessRunner launches a child process and streams its output lines.
// Satisfied by platform.Runner; swappable for tests.
type ProcessRunner interface {
	Run(ctx context.Context, program string, args []string, onLine platform.LineFunc) error
}
