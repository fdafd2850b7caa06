package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDGeneration is the identifier for the image generation section
	SectionIDGeneration = "generation"

	// Default values for image generation settings
	defaultGenerationModel = "gpt-image-1"
	defaultMaxWorkers      = 4
	defaultOutputDir       = ""

	// maxGenerationWorkers caps the fan-out pool regardless of configuration
	maxGenerationWorkers = 4
)

// GenerationSection manages image-variant generation configuration settings.
type GenerationSection struct {
	Model      string `json:"model"`
	MaxWorkers int    `json:"max_workers"`
	OutputDir  string `json:"output_dir"`
	mu         sync.RWMutex
}

// NewGenerationSection creates a new generation section with default settings.
func NewGenerationSection() *GenerationSection {
	return &GenerationSection{
		Model:      defaultGenerationModel,
		MaxWorkers: defaultMaxWorkers,
		OutputDir:  defaultOutputDir,
	}
}

// ID returns the section identifier.
func (s *GenerationSection) ID() string {
	return SectionIDGeneration
}

// Title returns the section title.
func (s *GenerationSection) Title() string {
	return "Image Generation Settings"
}

// Description returns the section description.
func (s *GenerationSection) Description() string {
	return "Configure the hosted image generation collaborator: model selection and concurrent worker limit."
}

// Data returns the current configuration data.
func (s *GenerationSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"model":       s.Model,
		"max_workers": s.MaxWorkers,
		"output_dir":  s.OutputDir,
	}
}

// SetData replaces the section's settings from stored data.
func (s *GenerationSection) SetData(data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["model"].(string); ok && v != "" {
		s.Model = v
	}
	if v, ok := data["max_workers"]; ok {
		if workers, ok := toInt(v); ok {
			s.MaxWorkers = workers
		}
	}
	if v, ok := data["output_dir"].(string); ok {
		s.OutputDir = v
	}
	return nil
}

// Validate checks that the current settings are usable.
func (s *GenerationSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if s.MaxWorkers < 1 || s.MaxWorkers > maxGenerationWorkers {
		return fmt.Errorf("max_workers must be between 1 and %d", maxGenerationWorkers)
	}
	return nil
}

// Reset restores the section to its default settings.
func (s *GenerationSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Model = defaultGenerationModel
	s.MaxWorkers = defaultMaxWorkers
	s.OutputDir = defaultOutputDir
}

// GetModel returns the configured image model.
func (s *GenerationSection) GetModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Model
}

// GetMaxWorkers returns the configured worker limit, clamped to the pool cap.
func (s *GenerationSection) GetMaxWorkers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.MaxWorkers < 1 {
		return 1
	}
	if s.MaxWorkers > maxGenerationWorkers {
		return maxGenerationWorkers
	}
	return s.MaxWorkers
}

// GetOutputDir returns the directory generated images are written to.
// Empty means the consumer falls back to its own default directory.
func (s *GenerationSection) GetOutputDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.OutputDir
}
