package interact

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/qapilot/pkg/browser"
)

// keyMap translates the friendly key names accepted in scripts into the
// driver's key identifiers. Lookup is case-insensitive. Names not in the
// map are sent as literal text instead of a key press.
var keyMap = map[string]string{
	"enter":     "Enter",
	"tab":       "Tab",
	"escape":    "Escape",
	"esc":       "Escape",
	"space":     "Space",
	"backspace": "Backspace",
	"delete":    "Delete",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"home":      "Home",
	"end":       "End",
	"page_up":   "PageUp",
	"page_down": "PageDown",
	"f5":        "F5",
	"ctrl+a":    "Control+a",
	"ctrl+c":    "Control+c",
	"ctrl+v":    "Control+v",
	"ctrl+x":    "Control+x",
	"ctrl+z":    "Control+z",
	"ctrl+s":    "Control+s",
}

// mapKey resolves a script key name. known is false when the name has no
// mapping and should be typed literally.
func mapKey(name string) (key string, known bool) {
	key, known = keyMap[strings.ToLower(name)]
	return key, known
}

func (d *Dispatcher) execPressKey(ctx context.Context, s *browser.Session, a Action) (string, error) {
	key, known := mapKey(a.Key)

	if a.Element != nil {
		handle, err := d.find(s, a.Element)
		if err != nil {
			return "", err
		}
		if known {
			if err := handle.Press(key); err != nil {
				return "", fmt.Errorf("key press failed: %w", err)
			}
		} else {
			if err := handle.Type(a.Key); err != nil {
				return "", fmt.Errorf("key press failed: %w", err)
			}
		}
		return fmt.Sprintf("Pressed key '%s' on element: %s", a.Key, a.Element.Descriptor()), nil
	}

	if known {
		if err := s.Page.Keyboard().Press(key); err != nil {
			return "", fmt.Errorf("key press failed: %w", err)
		}
	} else {
		if err := s.Page.Keyboard().Type(a.Key); err != nil {
			return "", fmt.Errorf("key press failed: %w", err)
		}
	}
	return fmt.Sprintf("Pressed key '%s' on active element", a.Key), nil
}
