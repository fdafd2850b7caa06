package browser

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// lockPatterns enumerates the lock artifacts a crashed Chromium process
// leaves behind in its profile directory. Any of these left over from a
// previous run would permanently wedge the next startup, so they are
// removed before every launch and after every quit.
var lockPatterns = []string{
	"SingletonLock",
	"SingletonCookie",
	"SingletonSocket",
	"lockfile",
	"chrome_debug.log",
	"*.lock",
	"Default/LockFile",
	"Default/SingletonLock",
}

var compiledLockPatterns []glob.Glob

func init() {
	compiledLockPatterns = make([]glob.Glob, 0, len(lockPatterns))
	for _, pattern := range lockPatterns {
		compiledLockPatterns = append(compiledLockPatterns, glob.MustCompile(pattern, '/'))
	}
}

// ReclaimLocks removes stale lock artifacts from the given storage directory
// and returns the paths it removed. Missing directories, missing files, and
// permission errors are all ignored: a previous crash is expected to leave
// these behind, and reclaiming is strictly best-effort.
func ReclaimLocks(dir string) []string {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	var removed []string
	for _, rel := range lockCandidates(dir) {
		for _, pattern := range compiledLockPatterns {
			if !pattern.Match(rel) {
				continue
			}
			path := filepath.Join(dir, filepath.FromSlash(rel))
			if err := os.Remove(path); err == nil {
				removed = append(removed, path)
			}
			break
		}
	}
	return removed
}

// lockCandidates lists entries of the storage directory and its Default/
// profile subdirectory as slash-separated relative paths. Lock artifacts
// only ever appear at these two levels.
func lockCandidates(dir string) []string {
	var candidates []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		candidates = append(candidates, entry.Name())
	}

	defaultEntries, err := os.ReadDir(filepath.Join(dir, "Default"))
	if err != nil {
		return candidates
	}
	for _, entry := range defaultEntries {
		if entry.IsDir() {
			continue
		}
		candidates = append(candidates, "Default/"+entry.Name())
	}

	return candidates
}
