package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orcadl/orca/internal/model"
)

// FFmpeg constants for conversion settings
const (
	// Video codec settings
	VideoCodec  = "libx264"
	VideoPreset = "medium"
	VideoCRF    = "23"

	// Audio codec settings
	AudioCodec   = "aac"
	AudioBitrate = "128k"

	// Container flags
	FastStartFlag = "+faststart"

	// Output suffix
	ConvertedSuffix = "-converted"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "convert-"
	OutputExtensionMP4  = ".mp4"
)

// Service converts downloaded media to a widely playable mp4 using ffmpeg
type Service struct {
	tasks      map[string]*model.ConvertTask
	cancels    map[string]context.CancelFunc
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConvertTask) // callback for UI updates
}

// NewService creates a new conversion service
func NewService() *Service {
	return &Service{
		tasks:   make(map[string]*model.ConvertTask),
		cancels: make(map[string]context.CancelFunc),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConvertTask)) {
	s.onUpdate = callback
}

// StartConversion starts converting a media file
func (s *Service) StartConversion(inputPath string) (*model.ConvertTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// One conversion per file at a time
	for _, task := range s.tasks {
		if task.InputPath == inputPath && task.State.IsActive() {
			return nil, fmt.Errorf("conversion already in progress for file: %s", inputPath)
		}
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	task := &model.ConvertTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: generateOutputPath(inputPath),
		State:      model.StateRunning,
		Progress:   0.0,
		Percent:    0,
		StartedAt:  time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.tasks[task.ID] = task
	s.cancels[task.ID] = cancel

	go s.runConversion(ctx, task)

	return task, nil
}

// StopConversion stops a running conversion task
func (s *Service) StopConversion(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("conversion task not found: %s", taskID)
	}
	if !task.State.IsActive() {
		return fmt.Errorf("conversion task is not active: %s", task.State)
	}

	if cancel, ok := s.cancels[taskID]; ok {
		cancel()
	}
	return nil
}

// GetTask returns a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConvertTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// runConversion performs the actual conversion
func (s *Service) runConversion(ctx context.Context, task *model.ConvertTask) {
	defer func() {
		s.tasksMutex.Lock()
		delete(s.cancels, task.ID)
		s.tasksMutex.Unlock()
	}()

	// Duration is needed to turn ffmpeg's time offsets into a percentage.
	duration, err := s.probeDuration(task.InputPath)
	if err != nil {
		log.Printf("failed to probe duration for %s: %v", task.InputPath, err)
		s.setTaskError(task, err)
		return
	}

	args := s.BuildFFmpegArgs(task.InputPath, task.OutputPath)
	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create stderr pipe: %w", err))
		return
	}

	if err := cmd.Start(); err != nil {
		s.setTaskError(task, fmt.Errorf("failed to start ffmpeg: %w", err))
		return
	}

	go s.monitorProgress(stderr, task, duration)

	err = cmd.Wait()

	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.State = model.StateCancelled
		os.Remove(task.OutputPath)
	} else if err != nil {
		task.State = model.StateFailed
		task.LastError = err.Error()
		os.Remove(task.OutputPath)
	} else {
		task.State = model.StateCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-c:v", VideoCodec, // Video codec
		"-preset", VideoPreset, // Encoding preset
		"-crf", VideoCRF, // Constant rate factor
		"-c:a", AudioCodec, // Audio codec
		"-b:a", AudioBitrate, // Audio bitrate
		"-movflags", FastStartFlag, // MP4 optimization
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// probeDuration gets the duration of a media file in seconds using ffprobe
func (s *Service) probeDuration(filePath string) (float64, error) {
	cmd := exec.Command(FFprobeCommand, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return parseProbeDuration(string(output))
}

// parseProbeDuration parses ffprobe csv output into seconds
func parseProbeDuration(output string) (float64, error) {
	durationStr := strings.TrimSpace(output)
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", durationStr, err)
	}
	return duration, nil
}

// monitorProgress monitors ffmpeg progress output
func (s *Service) monitorProgress(stderr io.ReadCloser, task *model.ConvertTask, totalDuration float64) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Parse progress line: out_time_us=123456
		if !strings.HasPrefix(line, ProgressTimePrefix) {
			continue
		}
		timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
		if err != nil {
			continue
		}

		timeSeconds := float64(timeMicroseconds) / 1000000.0
		if totalDuration <= 0 {
			continue
		}

		progress := timeSeconds / totalDuration
		if progress > 1.0 {
			progress = 1.0
		}

		s.tasksMutex.Lock()
		task.Progress = progress
		task.Percent = int(progress * 100)
		s.tasksMutex.Unlock()

		s.notifyUpdate(task)
	}
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.ConvertTask, err error) {
	s.tasksMutex.Lock()
	task.State = model.StateFailed
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConvertTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateOutputPath generates the output path for the converted file
func generateOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)
	return baseName + ConvertedSuffix + OutputExtensionMP4
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
