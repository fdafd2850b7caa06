package interact

import (
	"context"
	"fmt"

	"github.com/entrhq/qapilot/pkg/browser"
)

func (d *Dispatcher) execFill(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}

	if a.clearFirst() {
		if err := handle.Fill(a.Text); err != nil {
			return "", fmt.Errorf("fill failed: %w", err)
		}
	} else {
		// Append mode: focus the field and type so existing content stays.
		if err := handle.Focus(); err != nil {
			return "", fmt.Errorf("fill failed: %w", err)
		}
		if err := s.Page.Keyboard().Type(a.Text); err != nil {
			return "", fmt.Errorf("fill failed: %w", err)
		}
	}
	return fmt.Sprintf("Filled element %s with: '%s'", ref.Descriptor(), a.Text), nil
}
