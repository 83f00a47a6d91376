package platform

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Scanner buffer sizes for child process output
const (
	RunnerInitialBufSize = 64 * 1024
	RunnerMaxLineSize    = 1024 * 1024
)

// ErrExecutableNotFound is returned when the wrapped tool is not on PATH.
var ErrExecutableNotFound = errors.New("executable not found")

// LineFunc receives one line of child process output as it is produced.
type LineFunc func(line string)

// Runner launches external tools and streams their combined stdout/stderr
// line by line. Arguments are passed as an argv list, never through a shell.
type Runner struct{}

// NewRunner creates a new process runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run starts program with args and blocks until the child exits. onLine is
// invoked once per output line as it becomes available, not buffered until
// exit. Cancelling ctx kills the child. A missing executable is reported as
// ErrExecutableNotFound; a non-zero exit is reported with the last captured
// output line as diagnostic context.
func (r *Runner) Run(ctx context.Context, program string, args []string, onLine LineFunc) error {
	if _, err := exec.LookPath(program); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, program)
	}

	cmd := exec.CommandContext(ctx, program, args...)

	// Merge stdout and stderr into a single stream; yt-dlp interleaves
	// progress and diagnostics across both.
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return fmt.Errorf("failed to start %s: %w", program, err)
	}

	var lastLine string
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, RunnerInitialBufSize), RunnerMaxLineSize)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if line == "" {
				continue
			}
			lastLine = line
			if onLine != nil {
				onLine(line)
			}
		}
		// A line beyond RunnerMaxLineSize stops the scanner early. The
		// pipe must keep draining regardless, or the child's writes block
		// and cmd.Wait never returns.
		io.Copy(io.Discard, pr)
	}()

	waitErr := cmd.Wait()
	pw.Close()
	<-done

	if waitErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) && lastLine != "" {
			return fmt.Errorf("%s exited with code %d: %s", program, exitErr.ExitCode(), lastLine)
		}
		return fmt.Errorf("%s failed: %w", program, waitErr)
	}
	return nil
}

// CheckInstalled verifies that program can be located on PATH.
func CheckInstalled(program string) error {
	if _, err := exec.LookPath(program); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, program)
	}
	return nil
}
