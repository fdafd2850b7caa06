package interact

import "errors"

// Element lookup distinguishes four failure causes because each implies a
// different remediation in a QA script: a wrong selector, a hidden element,
// a disabled control, or an element covered by something else.
var (
	// ErrInvalidLocator indicates an element reference with no selector,
	// attributes, or text to resolve.
	ErrInvalidLocator = errors.New("invalid element reference: must provide selector, attributes, or text")

	// ErrElementNotFound indicates no element matched the resolved query.
	ErrElementNotFound = errors.New("element not found")

	// ErrElementNotVisible indicates the element exists but is hidden or
	// outside the viewport.
	ErrElementNotVisible = errors.New("element found but not visible")

	// ErrElementNotInteractable indicates the element exists but is disabled.
	ErrElementNotInteractable = errors.New("element found but disabled")

	// ErrElementNotClickable indicates the element is visible and enabled
	// but never became clickable, typically because another element covers it.
	ErrElementNotClickable = errors.New("element found but not clickable")

	// ErrActionTimeout indicates a wait condition exceeded its bound.
	ErrActionTimeout = errors.New("timed out waiting for condition")
)
