package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents the single live browser process plus the profile
// storage directory it was started with. The Manager owns the session
// exclusively; callers borrow it for the duration of one action batch and
// must not retain it afterwards, because the manager may replace the
// underlying process between batches.
type Session struct {
	// StorageDir is the profile directory the process was started with.
	// Cookies and local storage persist here across restarts.
	StorageDir string

	// Headless indicates if the browser is running without a visible window
	Headless bool

	// Context is the persistent browser context bound to StorageDir
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time
}

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Default values for session operations
const (
	// DefaultStorageDir is used when a caller does not supply a storage directory
	DefaultStorageDir = "./browser_session"

	// DefaultTimeout is the default operation timeout in milliseconds
	DefaultTimeout = 30000.0

	// DefaultViewportWidth and DefaultViewportHeight size new sessions
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// BrowserPathEnv names the environment variable holding a pre-installed
	// browser binary. When set, the fallback installer is skipped.
	BrowserPathEnv = "QAPILOT_BROWSER_PATH"
)
