package interact

import (
	"context"
	"fmt"

	"github.com/entrhq/qapilot/pkg/browser"
)

func (d *Dispatcher) execScroll(ctx context.Context, s *browser.Session, a Action) (string, error) {
	direction := a.Direction
	if direction == "" {
		direction = ScrollDown
	}
	amount := a.Amount
	if amount == 0 {
		amount = defaultScrollAmount
	}

	var script string
	switch direction {
	case ScrollDown:
		script = fmt.Sprintf("window.scrollBy(0, %d)", amount)
	case ScrollUp:
		script = fmt.Sprintf("window.scrollBy(0, -%d)", amount)
	case ScrollTop:
		script = "window.scrollTo(0, 0)"
	case ScrollBottom:
		script = "window.scrollTo(0, document.body.scrollHeight)"
	case ScrollToElement:
		ref, err := requireElement(a)
		if err != nil {
			return "", err
		}
		handle, err := d.find(s, ref)
		if err != nil {
			return "", err
		}
		if err := handle.ScrollIntoViewIfNeeded(); err != nil {
			return "", fmt.Errorf("scroll to element failed: %w", err)
		}
		return fmt.Sprintf("Scrolled to element: %s", ref.Descriptor()), nil
	default:
		return "", fmt.Errorf("unknown scroll direction %q", direction)
	}

	if _, err := s.Page.Evaluate(script); err != nil {
		return "", fmt.Errorf("scroll failed: %w", err)
	}
	return fmt.Sprintf("Scrolled %s by %d pixels", direction, amount), nil
}
