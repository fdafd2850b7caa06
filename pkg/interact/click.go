package interact

import (
	"context"
	"fmt"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

func (d *Dispatcher) execClick(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}
	if err := handle.Click(); err != nil {
		return "", fmt.Errorf("click failed: %w", err)
	}
	return fmt.Sprintf("Clicked element: %s", ref.Descriptor()), nil
}

func (d *Dispatcher) execDoubleClick(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}
	if err := handle.Dblclick(); err != nil {
		return "", fmt.Errorf("double click failed: %w", err)
	}
	return fmt.Sprintf("Double clicked element: %s", ref.Descriptor()), nil
}

func (d *Dispatcher) execRightClick(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}
	opts := playwright.ElementHandleClickOptions{Button: playwright.MouseButtonRight}
	if err := handle.Click(opts); err != nil {
		return "", fmt.Errorf("right click failed: %w", err)
	}
	return fmt.Sprintf("Right clicked element: %s", ref.Descriptor()), nil
}

func (d *Dispatcher) execHover(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}
	if err := handle.Hover(); err != nil {
		return "", fmt.Errorf("hover failed: %w", err)
	}
	return fmt.Sprintf("Hovered over element: %s", ref.Descriptor()), nil
}

func (d *Dispatcher) execNavigate(ctx context.Context, s *browser.Session, a Action) (string, error) {
	if err := s.Navigate(a.URL); err != nil {
		return "", err
	}
	return fmt.Sprintf("Navigated to: %s", a.URL), nil
}
