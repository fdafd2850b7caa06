package interact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

func (d *Dispatcher) execWait(ctx context.Context, s *browser.Session, a Action) (string, error) {
	seconds := a.Seconds
	if seconds <= 0 {
		seconds = defaultWaitSeconds
	}

	switch a.Condition {
	case "":
		sleepCtx(ctx, secondsToDuration(seconds))
		return fmt.Sprintf("Waited for %g seconds", seconds), nil

	case CondElementVisible:
		ref, err := requireElement(a)
		if err != nil {
			return "", err
		}
		if err := d.waitVisible(s, ref, seconds); err != nil {
			return "", err
		}
		return fmt.Sprintf("Waited for element %s to be visible", ref.Descriptor()), nil

	case CondElementClickable:
		ref, err := requireElement(a)
		if err != nil {
			return "", err
		}
		if err := d.waitClickable(ctx, s, ref, seconds); err != nil {
			return "", err
		}
		return fmt.Sprintf("Waited for element %s to be clickable", ref.Descriptor()), nil

	default:
		return "", fmt.Errorf("unknown wait condition %q", a.Condition)
	}
}

func (d *Dispatcher) waitVisible(s *browser.Session, ref *ElementRef, seconds float64) error {
	selector, err := ref.playwrightSelector()
	if err != nil {
		return err
	}
	_, err = s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(seconds * 1000),
	})
	if err == nil {
		return nil
	}
	if isTimeoutErr(err) {
		return fmt.Errorf("%w: element %s not visible after %gs", ErrActionTimeout, ref.Descriptor(), seconds)
	}
	return fmt.Errorf("wait for element %s failed: %w", ref.Descriptor(), err)
}

// isTimeoutErr reports whether a driver error is a wait deadline rather
// than a selector or protocol failure. The driver exposes no timeout
// error type, so the deadline-exceeded sentinel and the driver's message
// convention are the only signals available.
func isTimeoutErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(err.Error(), "Timeout")
}

// waitClickable waits for visibility, then polls the enabled state until
// the deadline. The driver has no single clickable wait, so the check is
// composed from the two halves.
func (d *Dispatcher) waitClickable(ctx context.Context, s *browser.Session, ref *ElementRef, seconds float64) error {
	deadline := time.Now().Add(secondsToDuration(seconds))

	if err := d.waitVisible(s, ref, seconds); err != nil {
		if errors.Is(err, ErrActionTimeout) {
			return fmt.Errorf("%w: element %s not clickable after %gs", ErrActionTimeout, ref.Descriptor(), seconds)
		}
		return err
	}

	selector, err := ref.playwrightSelector()
	if err != nil {
		return err
	}
	for {
		if handle, err := s.Page.QuerySelector(selector); err == nil && handle != nil {
			if enabled, err := handle.IsEnabled(); err == nil && enabled {
				return nil
			}
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return fmt.Errorf("%w: element %s not clickable after %gs", ErrActionTimeout, ref.Descriptor(), seconds)
		}
		sleepCtx(ctx, 100*time.Millisecond)
	}
}
