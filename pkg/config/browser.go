package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDBrowser is the identifier for the browser settings section
	SectionIDBrowser = "browser"

	// Default values for browser settings
	defaultHeadless        = true
	defaultStorageDir      = "./browser_session"
	defaultWaitSeconds     = 3
	defaultBrowserPath     = ""
	defaultViewportWidth   = 1280
	defaultViewportHeight  = 720
	maxConfigurableWaitSec = 300
)

// BrowserSection manages browser automation configuration settings.
type BrowserSection struct {
	Headless       bool   `json:"headless"`
	StorageDir     string `json:"storage_dir"`
	WaitSeconds    int    `json:"wait_seconds"`
	BrowserPath    string `json:"browser_path"`
	ViewportWidth  int    `json:"viewport_width"`
	ViewportHeight int    `json:"viewport_height"`
	mu             sync.RWMutex
}

// NewBrowserSection creates a new browser section with default settings.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		Headless:       defaultHeadless,
		StorageDir:     defaultStorageDir,
		WaitSeconds:    defaultWaitSeconds,
		BrowserPath:    defaultBrowserPath,
		ViewportWidth:  defaultViewportWidth,
		ViewportHeight: defaultViewportHeight,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Title returns the section title.
func (s *BrowserSection) Title() string {
	return "Browser Settings"
}

// Description returns the section description.
func (s *BrowserSection) Description() string {
	return "Configure the persistent browser session: headless mode, profile storage directory, default waits, and an optional pre-installed browser binary."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"headless":        s.Headless,
		"storage_dir":     s.StorageDir,
		"wait_seconds":    s.WaitSeconds,
		"browser_path":    s.BrowserPath,
		"viewport_width":  s.ViewportWidth,
		"viewport_height": s.ViewportHeight,
	}
}

// SetData replaces the section's settings from stored data.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["headless"].(bool); ok {
		s.Headless = v
	}
	if v, ok := data["storage_dir"].(string); ok && v != "" {
		s.StorageDir = v
	}
	if v, ok := data["wait_seconds"]; ok {
		if secs, ok := toInt(v); ok {
			s.WaitSeconds = secs
		}
	}
	if v, ok := data["browser_path"].(string); ok {
		s.BrowserPath = v
	}
	if v, ok := data["viewport_width"]; ok {
		if w, ok := toInt(v); ok {
			s.ViewportWidth = w
		}
	}
	if v, ok := data["viewport_height"]; ok {
		if h, ok := toInt(v); ok {
			s.ViewportHeight = h
		}
	}
	return nil
}

// Validate checks that the current settings are usable.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StorageDir == "" {
		return fmt.Errorf("storage_dir must not be empty")
	}
	if s.WaitSeconds < 0 || s.WaitSeconds > maxConfigurableWaitSec {
		return fmt.Errorf("wait_seconds must be between 0 and %d", maxConfigurableWaitSec)
	}
	if s.ViewportWidth < 100 || s.ViewportWidth > 5000 {
		return fmt.Errorf("viewport_width must be between 100 and 5000 pixels")
	}
	if s.ViewportHeight < 100 || s.ViewportHeight > 5000 {
		return fmt.Errorf("viewport_height must be between 100 and 5000 pixels")
	}
	return nil
}

// Reset restores the section to its default settings.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Headless = defaultHeadless
	s.StorageDir = defaultStorageDir
	s.WaitSeconds = defaultWaitSeconds
	s.BrowserPath = defaultBrowserPath
	s.ViewportWidth = defaultViewportWidth
	s.ViewportHeight = defaultViewportHeight
}

// IsHeadless returns the default headless mode for new sessions.
func (s *BrowserSection) IsHeadless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless
}

// SetHeadless updates the default headless mode.
func (s *BrowserSection) SetHeadless(headless bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = headless
}

// GetStorageDir returns the default session storage directory.
func (s *BrowserSection) GetStorageDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.StorageDir
}

// SetStorageDir updates the default session storage directory.
func (s *BrowserSection) SetStorageDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StorageDir = dir
}

// GetWaitSeconds returns the default wait used for page loads and element lookups.
func (s *BrowserSection) GetWaitSeconds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.WaitSeconds
}

// GetBrowserPath returns the configured browser binary override, if any.
func (s *BrowserSection) GetBrowserPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BrowserPath
}

// GetViewport returns the configured viewport dimensions.
func (s *BrowserSection) GetViewport() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ViewportWidth, s.ViewportHeight
}

// toInt converts JSON-decoded numeric values (which arrive as float64)
// and plain ints to int.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
