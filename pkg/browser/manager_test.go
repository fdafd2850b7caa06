package browser

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lifecycleCounter records stubbed launches and closes so lifecycle
// invariants can be checked without a browser process.
type lifecycleCounter struct {
	launches int
	closes   int
}

func newStubManager(t *testing.T, healthy bool) (*Manager, *lifecycleCounter) {
	t.Helper()
	counter := &lifecycleCounter{}

	m := NewManager()
	m.launch = func(dir string, headless bool) (*Session, error) {
		counter.launches++
		now := time.Now()
		return &Session{StorageDir: dir, Headless: headless, CreatedAt: now, LastUsedAt: now}, nil
	}
	m.terminate = func(s *Session) error {
		counter.closes++
		return nil
	}
	m.health = func(s *Session) bool {
		return s != nil && healthy
	}
	return m, counter
}

func TestRestartIfUnhealthyHealthySessionIsNoOp(t *testing.T) {
	m, counter := newStubManager(t, true)
	dir := filepath.Join(t.TempDir(), "profile")

	_, err := m.Acquire(dir, true)
	require.NoError(t, err)
	require.Equal(t, 1, counter.launches)

	require.NoError(t, m.RestartIfUnhealthy(dir, true))
	require.NoError(t, m.RestartIfUnhealthy(dir, true))

	assert.Equal(t, 1, counter.launches, "healthy session must never be restarted")
	assert.Equal(t, 0, counter.closes)
}

func TestRestartIfUnhealthyRecreatesDeadSession(t *testing.T) {
	m, counter := newStubManager(t, false)
	dir := filepath.Join(t.TempDir(), "profile")

	_, err := m.Acquire(dir, true)
	require.NoError(t, err)

	require.NoError(t, m.RestartIfUnhealthy(dir, true))
	assert.Equal(t, 2, counter.launches)
	assert.Equal(t, 1, counter.closes)
}

func TestAcquireSameBindingReusesSession(t *testing.T) {
	m, counter := newStubManager(t, true)
	dir := filepath.Join(t.TempDir(), "profile")

	first, err := m.Acquire(dir, true)
	require.NoError(t, err)
	second, err := m.Acquire(dir, true)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, counter.launches)
	assert.Equal(t, 0, counter.closes)
}

func TestAcquireBindingChangeTearsDownPrevious(t *testing.T) {
	m, counter := newStubManager(t, true)
	base := t.TempDir()
	dirA := filepath.Join(base, "s1")
	dirB := filepath.Join(base, "s2")

	_, err := m.Acquire(dirA, true)
	require.NoError(t, err)

	session, err := m.Acquire(dirB, true)
	require.NoError(t, err)

	assert.Equal(t, 1, counter.closes, "previous process must be torn down")
	assert.Equal(t, 2, counter.launches)
	assert.Equal(t, dirB, session.StorageDir, "later request wins")
	assert.Equal(t, dirB, m.Current().StorageDir)
}

func TestQuitTerminatesAndClearsSession(t *testing.T) {
	m, counter := newStubManager(t, true)
	dir := filepath.Join(t.TempDir(), "profile")

	_, err := m.Acquire(dir, true)
	require.NoError(t, err)

	require.NoError(t, m.Quit())
	assert.Equal(t, 1, counter.closes)
	assert.Nil(t, m.Current())
}

func TestNormalizeStorageDir(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty uses default", "", filepath.Clean(DefaultStorageDir)},
		{"cleans trailing separator", "/tmp/s1/", "/tmp/s1"},
		{"cleans redundant segments", "/tmp/./s1", "/tmp/s1"},
		{"keeps clean path", "/tmp/s1", "/tmp/s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeStorageDir(tt.in))
		})
	}
}

func TestSameBinding(t *testing.T) {
	s := &Session{StorageDir: "/tmp/s1", Headless: true}

	assert.True(t, sameBinding(s, "/tmp/s1", true))
	assert.False(t, sameBinding(s, "/tmp/s2", true), "different storage dir must force recreate")
	assert.False(t, sameBinding(s, "/tmp/s1", false), "different headless mode must force recreate")
}

func TestHealthCheckNilSession(t *testing.T) {
	m := NewManager()

	assert.False(t, m.HealthCheck(nil))
	assert.False(t, m.HealthCheck(&Session{}))
}

func TestQuitWithoutSession(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Quit())
	assert.Nil(t, m.Current())
}

func TestStartErrorUnwrap(t *testing.T) {
	cause := errors.New("exec: chromium not found")
	err := &StartError{Dir: "/tmp/s1", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/s1")
	assert.Contains(t, err.Error(), "chromium not found")
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		requested string
		equal     bool
	}{
		{"trailing slash on current", "http://x/a/", "http://x/a", true},
		{"trailing slash on requested", "http://x/a", "http://x/a/", true},
		{"identical", "http://x/a", "http://x/a", true},
		{"different paths", "http://x/a", "http://x/b", false},
		{"different hosts", "http://x/a", "http://y/a", false},
		{"only one slash stripped", "http://x/a//", "http://x/a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, normalizeURL(tt.current) == normalizeURL(tt.requested))
		})
	}
}

func TestSessionUpdateLastUsed(t *testing.T) {
	s := &Session{LastUsedAt: time.Now().Add(-time.Hour)}
	before := s.LastUsedAt

	s.UpdateLastUsed()
	assert.True(t, s.LastUsedAt.After(before))
}
