package convert

import (
	"github.com/orcadl/orca/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConvertTask))
	StartConversion(inputPath string) (*model.ConvertTask, error)
	StopConversion(taskID string) error
	GetTask(taskID string) (*model.ConvertTask, bool)
}
