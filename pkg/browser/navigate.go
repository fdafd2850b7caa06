package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Navigate loads url in the session's page unless the page is already
// there. Current and requested URLs are compared after stripping a single
// trailing slash, so repeated calls for the same page do not discard
// in-page state (scroll position, open menus, focus). If the current URL
// cannot be determined, navigation happens unconditionally.
func (s *Session) Navigate(url string) error {
	s.UpdateLastUsed()

	current := s.Page.URL()
	if current != "" && normalizeURL(current) == normalizeURL(url) {
		return nil
	}

	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}
	if _, err := s.Page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// WaitReady blocks until the page body is present, bounded by the given
// timeout in milliseconds.
func (s *Session) WaitReady(timeout float64) error {
	opts := playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(timeout),
	}
	if _, err := s.Page.WaitForSelector("body", opts); err != nil {
		return fmt.Errorf("page did not become ready: %w", err)
	}
	return nil
}

// normalizeURL strips a single trailing slash so "http://x/a/" and
// "http://x/a" compare equal.
func normalizeURL(u string) string {
	return strings.TrimSuffix(u, "/")
}
