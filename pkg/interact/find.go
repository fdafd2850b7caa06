package interact

import (
	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

// findElement resolves ref and waits up to timeout milliseconds for a
// visible, enabled match. On failure it re-queries the page once to
// classify the cause: missing, hidden, disabled, or present-but-never-
// clickable. The classification is best-effort; if the page has since
// changed, the element simply reads as not found.
func findElement(s *browser.Session, ref *ElementRef, timeout float64) (playwright.ElementHandle, error) {
	selector, err := ref.playwrightSelector()
	if err != nil {
		return nil, err
	}

	handle, waitErr := s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeout),
	})
	if waitErr == nil && handle != nil {
		if enabled, err := handle.IsEnabled(); err == nil && !enabled {
			return nil, ErrElementNotInteractable
		}
		return handle, nil
	}

	return nil, classifyLookupFailure(s, selector)
}

// classifyLookupFailure inspects the current DOM to explain why the wait
// did not produce a usable element.
func classifyLookupFailure(s *browser.Session, selector string) error {
	handle, err := s.Page.QuerySelector(selector)
	if err != nil || handle == nil {
		return ErrElementNotFound
	}
	if visible, err := handle.IsVisible(); err == nil && !visible {
		return ErrElementNotVisible
	}
	if enabled, err := handle.IsEnabled(); err == nil && !enabled {
		return ErrElementNotInteractable
	}
	return ErrElementNotClickable
}
