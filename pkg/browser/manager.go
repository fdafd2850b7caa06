package browser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/entrhq/qapilot/pkg/config"
	"github.com/entrhq/qapilot/pkg/logging"
	"github.com/playwright-community/playwright-go"
)

// Manager owns the single shared browser session. Browser startup costs
// seconds, so the manager amortizes one live process across many short tool
// calls instead of launching a fresh process per call. Acquire,
// RestartIfUnhealthy, Quit, and WithSession are mutually exclusive critical
// sections: callers never observe a half-initialized session or two
// different "current" sessions.
//
// When two callers request different storage directories, the later request
// wins and the earlier caller's session is torn down. There is no
// per-directory pooling.
type Manager struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	session *Session
	logger  *logging.Logger

	// launch, terminate, and health are the process-control seams; tests
	// substitute them to exercise lifecycle invariants without a browser.
	launch    func(dir string, headless bool) (*Session, error)
	terminate func(s *Session) error
	health    func(s *Session) bool
}

// NewManager creates a session manager. The manager launches nothing until
// the first Acquire.
func NewManager() *Manager {
	logger, _ := logging.NewLogger("browser")
	m := &Manager{logger: logger}
	m.launch = m.launchBrowser
	m.terminate = closeBrowser
	m.health = probeSession
	return m
}

// Acquire returns a healthy session bound to storageDir and headless mode.
// If no session exists, or the existing one was started with a different
// storage directory or headless mode, any existing process is terminated
// (best-effort), stale lock artifacts are reclaimed, and a new process is
// started with cookie persistence enabled. Returns a *StartError if the
// process fails to launch after lock reclamation.
func (m *Manager) Acquire(storageDir string, headless bool) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquireLocked(storageDir, headless)
}

// HealthCheck reports whether the session's browser process is still
// responsive, using a cheap round-trip query. It never returns an error:
// any communication failure reads as unhealthy.
func (m *Manager) HealthCheck(s *Session) bool {
	return m.health(s)
}

// probeSession is the default health probe.
func probeSession(s *Session) bool {
	if s == nil || s.Page == nil {
		return false
	}
	_, err := s.Page.Title()
	return err == nil
}

// RestartIfUnhealthy recreates the session if its process stopped
// responding. Calling it on a healthy session is a no-op, so it is safe to
// call before every batch; this is the crash-recovery path.
func (m *Manager) RestartIfUnhealthy(storageDir string, headless bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil && m.HealthCheck(m.session) {
		return nil
	}

	m.logger.Warnf("browser session unresponsive, restarting in %s", storageDir)
	m.teardownLocked()
	_, err := m.startLocked(normalizeStorageDir(storageDir), headless)
	return err
}

// Quit terminates the browser session. If graceful termination fails, any
// lingering browser processes are killed by name as a fallback. Lock
// artifacts are reclaimed afterward in all cases, and the owned session is
// cleared so a subsequent Acquire starts fresh.
func (m *Manager) Quit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}

	dir := m.session.StorageDir
	graceful := true

	if err := m.terminate(m.session); err != nil {
		m.logger.Warnf("graceful browser close failed: %v", err)
		graceful = false
	}
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			m.logger.Warnf("failed to stop browser driver: %v", err)
			graceful = false
		}
		m.pw = nil
	}

	if !graceful {
		forceKillBrowser(m.logger)
	}

	ReclaimLocks(dir)
	m.session = nil
	m.logger.Infof("browser session in %s terminated", dir)
	return nil
}

// WithSession runs fn against a healthy session bound to storageDir and
// headless mode, holding the manager's lock for the duration so a
// concurrent restart or quit cannot replace the process mid-batch.
func (m *Manager) WithSession(storageDir string, headless bool, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.acquireLocked(storageDir, headless)
	if err != nil {
		return err
	}
	if !m.HealthCheck(session) {
		m.teardownLocked()
		session, err = m.startLocked(normalizeStorageDir(storageDir), headless)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSessionLost, err)
		}
	}
	return fn(session)
}

// Current returns the currently owned session, or nil. Intended for
// inspection; callers that need to use the session should go through
// WithSession.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// acquireLocked implements Acquire. Caller must hold m.mu.
func (m *Manager) acquireLocked(storageDir string, headless bool) (*Session, error) {
	dir := normalizeStorageDir(storageDir)

	if m.session != nil {
		if sameBinding(m.session, dir, headless) {
			return m.session, nil
		}
		// A different binding was requested: the existing process is torn
		// down and the new request wins.
		m.logger.Infof("session binding changed (%s -> %s), recreating", m.session.StorageDir, dir)
		m.teardownLocked()
	}

	return m.startLocked(dir, headless)
}

// startLocked reclaims stale locks and launches a new browser process.
// Caller must hold m.mu.
func (m *Manager) startLocked(dir string, headless bool) (*Session, error) {
	if removed := ReclaimLocks(dir); len(removed) > 0 {
		m.logger.Infof("reclaimed stale lock artifacts: %v", removed)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, &StartError{Dir: dir, Err: err}
	}

	session, err := m.launch(dir, headless)
	if err != nil {
		return nil, err
	}
	m.session = session

	m.logger.Infof("started persistent browser session in %s (headless=%v)", dir, headless)
	return m.session, nil
}

// launchBrowser starts the driver and browser process for real sessions.
// Caller must hold m.mu.
func (m *Manager) launchBrowser(dir string, headless bool) (*Session, error) {
	if err := m.ensureRuntimeLocked(); err != nil {
		return nil, &StartError{Dir: dir, Err: err}
	}

	width, height := DefaultViewportWidth, DefaultViewportHeight
	if cfg := config.GetBrowser(); cfg != nil {
		width, height = cfg.GetViewport()
	}

	launchOpts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(headless),
		Viewport: &playwright.Size{Width: width, Height: height},
	}
	if path := browserPath(); path != "" {
		launchOpts.ExecutablePath = playwright.String(path)
	}

	context, err := m.pw.Chromium.LaunchPersistentContext(dir, launchOpts)
	if err != nil {
		return nil, &StartError{Dir: dir, Err: err}
	}

	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			return nil, &StartError{Dir: dir, Err: err}
		}
	}
	page.SetDefaultTimeout(DefaultTimeout)

	now := time.Now()
	return &Session{
		StorageDir: dir,
		Headless:   headless,
		Context:    context,
		Page:       page,
		CreatedAt:  now,
		LastUsedAt: now,
	}, nil
}

// closeBrowser is the default graceful close.
func closeBrowser(s *Session) error {
	return s.Context.Close()
}

// teardownLocked closes the current session, swallowing termination errors.
// Caller must hold m.mu.
func (m *Manager) teardownLocked() {
	if m.session == nil {
		return
	}
	if err := m.terminate(m.session); err != nil {
		m.logger.Warnf("error closing previous session: %v", err)
	}
	m.session = nil
}

// ensureRuntimeLocked starts the playwright driver, installing it (and
// browsers, unless a pre-installed binary is configured) on first use.
// Caller must hold m.mu.
func (m *Manager) ensureRuntimeLocked() error {
	if m.pw != nil {
		return nil
	}

	// Discard driver output so it cannot interleave with tool results.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if browserPath() != "" {
		opts.SkipInstallBrowsers = true
	}

	if err := playwright.Install(opts); err != nil {
		return err
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return err
	}
	m.pw = pw
	return nil
}

// browserPath resolves an optional pre-installed browser binary, preferring
// the environment over configuration.
func browserPath() string {
	if path := os.Getenv(BrowserPathEnv); path != "" {
		return path
	}
	if cfg := config.GetBrowser(); cfg != nil {
		return cfg.GetBrowserPath()
	}
	return ""
}

// normalizeStorageDir applies the default directory and cleans the path so
// equivalent spellings of the same directory compare equal.
func normalizeStorageDir(dir string) string {
	if dir == "" {
		dir = DefaultStorageDir
	}
	return filepath.Clean(dir)
}

// sameBinding reports whether the session was started with the requested
// storage directory and headless mode.
func sameBinding(s *Session, dir string, headless bool) bool {
	return s.StorageDir == dir && s.Headless == headless
}

// forceKillBrowser kills lingering browser processes by name. The driver
// hides the child process handle, so after a failed graceful close this is
// the only remaining way to guarantee process death.
func forceKillBrowser(logger *logging.Logger) {
	var commands [][]string
	if runtime.GOOS == "windows" {
		commands = [][]string{
			{"taskkill", "/f", "/im", "chrome.exe"},
			{"taskkill", "/f", "/im", "msedge.exe"},
		}
	} else {
		commands = [][]string{
			{"pkill", "-f", "chromium"},
			{"pkill", "-f", "chrome"},
		}
	}

	for _, argv := range commands {
		cmd := exec.Command(argv[0], argv[1:]...)
		if err := cmd.Run(); err != nil {
			// pkill exits non-zero when nothing matched; that is fine.
			logger.Debugf("%s: %v", argv[0], err)
		}
	}
	logger.Warnf("force killed lingering browser processes")
}
