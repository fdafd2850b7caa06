package interact

import (
	"context"
	"fmt"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

// Cursor targeting resolves in a fixed order: element center, absolute
// coordinates, then coordinates relative to the last tracked position.
// Exactly one mode applies per action.

func (d *Dispatcher) execMoveCursor(ctx context.Context, s *browser.Session, a Action) (string, error) {
	switch {
	case a.Element != nil:
		x, y, desc, err := d.elementCenter(s, a.Element)
		if err != nil {
			return "", err
		}
		if err := s.Page.Mouse().Move(x, y); err != nil {
			return "", fmt.Errorf("cursor move failed: %w", err)
		}
		d.cursorX, d.cursorY = x, y
		if a.CenterOnElement {
			return fmt.Sprintf("Moved cursor to center of element: %s", desc), nil
		}
		return fmt.Sprintf("Moved cursor to element: %s", desc), nil

	case a.X != nil && a.Y != nil:
		x, y := float64(*a.X), float64(*a.Y)
		if err := s.Page.Mouse().Move(x, y); err != nil {
			return "", fmt.Errorf("cursor move failed: %w", err)
		}
		d.cursorX, d.cursorY = x, y
		return fmt.Sprintf("Moved cursor to position: (%d, %d)", *a.X, *a.Y), nil

	case a.RelativeX != nil || a.RelativeY != nil:
		var dx, dy float64
		if a.RelativeX != nil {
			dx = float64(*a.RelativeX)
		}
		if a.RelativeY != nil {
			dy = float64(*a.RelativeY)
		}
		x, y := d.cursorX+dx, d.cursorY+dy
		if err := s.Page.Mouse().Move(x, y); err != nil {
			return "", fmt.Errorf("cursor move failed: %w", err)
		}
		d.cursorX, d.cursorY = x, y
		return fmt.Sprintf("Moved cursor by offset: (%g, %g)", dx, dy), nil
	}

	return "", fmt.Errorf("move_cursor action requires an element, coordinates, or a relative offset")
}

func (d *Dispatcher) execMouseClick(ctx context.Context, s *browser.Session, a Action) (string, error) {
	button, err := mouseButton(a.Button)
	if err != nil {
		return "", err
	}
	count := a.ClickCount
	if count == 0 {
		count = 1
	}

	opts := playwright.MouseClickOptions{
		Button:     button,
		ClickCount: playwright.Int(count),
	}

	switch {
	case a.Element != nil:
		x, y, desc, err := d.elementCenter(s, a.Element)
		if err != nil {
			return "", err
		}
		if err := s.Page.Mouse().Click(x, y, opts); err != nil {
			return "", fmt.Errorf("mouse click failed: %w", err)
		}
		d.cursorX, d.cursorY = x, y
		return fmt.Sprintf("Mouse %s clicked %d time(s) on element: %s", buttonName(a.Button), count, desc), nil

	case a.X != nil && a.Y != nil:
		x, y := float64(*a.X), float64(*a.Y)
		if err := s.Page.Mouse().Click(x, y, opts); err != nil {
			return "", fmt.Errorf("mouse click failed: %w", err)
		}
		d.cursorX, d.cursorY = x, y
		return fmt.Sprintf("Mouse %s clicked %d time(s) at position: (%d, %d)", buttonName(a.Button), count, *a.X, *a.Y), nil
	}

	return "", fmt.Errorf("mouse_click action requires an element or coordinates")
}

// elementCenter locates ref and returns its bounding box center along
// with the locator descriptor.
func (d *Dispatcher) elementCenter(s *browser.Session, ref *ElementRef) (x, y float64, desc string, err error) {
	handle, err := d.find(s, ref)
	if err != nil {
		return 0, 0, "", err
	}
	box, err := handle.BoundingBox()
	if err != nil || box == nil {
		return 0, 0, "", ErrElementNotVisible
	}
	return box.X + box.Width/2, box.Y + box.Height/2, ref.Descriptor(), nil
}

func mouseButton(name string) (*playwright.MouseButton, error) {
	switch name {
	case "", "left":
		return playwright.MouseButtonLeft, nil
	case "right":
		return playwright.MouseButtonRight, nil
	case "middle":
		return playwright.MouseButtonMiddle, nil
	default:
		return nil, fmt.Errorf("unknown mouse button %q", name)
	}
}

func buttonName(name string) string {
	if name == "" {
		return "left"
	}
	return name
}
