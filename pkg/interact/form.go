package interact

import (
	"context"
	"fmt"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

func (d *Dispatcher) execSelectOption(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}

	var values playwright.SelectOptionValues
	var chosen string
	switch {
	case a.OptionValue != "":
		values.Values = &[]string{a.OptionValue}
		chosen = a.OptionValue
	case a.OptionText != "":
		values.Labels = &[]string{a.OptionText}
		chosen = a.OptionText
	default:
		return "", fmt.Errorf("select_option action requires option_value or option_text")
	}

	if _, err := handle.SelectOption(values); err != nil {
		return "", fmt.Errorf("select option failed: %w", err)
	}
	return fmt.Sprintf("Selected option '%s' in element: %s", chosen, ref.Descriptor()), nil
}

func (d *Dispatcher) execCheck(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}
	if err := handle.Check(); err != nil {
		return "", fmt.Errorf("check failed: %w", err)
	}
	return fmt.Sprintf("Checked checkbox: %s", ref.Descriptor()), nil
}

func (d *Dispatcher) execUncheck(ctx context.Context, s *browser.Session, a Action) (string, error) {
	ref, err := requireElement(a)
	if err != nil {
		return "", err
	}
	handle, err := d.find(s, ref)
	if err != nil {
		return "", err
	}
	if err := handle.Uncheck(); err != nil {
		return "", fmt.Errorf("uncheck failed: %w", err)
	}
	return fmt.Sprintf("Unchecked checkbox: %s", ref.Descriptor()), nil
}
