package interact

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies one interaction type in the action union.
type Kind string

const (
	KindClick           Kind = "click"
	KindFill            Kind = "fill"
	KindScroll          Kind = "scroll"
	KindHover           Kind = "hover"
	KindDoubleClick     Kind = "double_click"
	KindRightClick      Kind = "right_click"
	KindPressKey        Kind = "press_key"
	KindSelectOption    Kind = "select_option"
	KindCheckCheckbox   Kind = "check_checkbox"
	KindUncheckCheckbox Kind = "uncheck_checkbox"
	KindWait            Kind = "wait"
	KindNavigate        Kind = "navigate"
	KindMoveCursor      Kind = "move_cursor"
	KindMouseClick      Kind = "mouse_click"
)

var validKinds = map[Kind]bool{
	KindClick:           true,
	KindFill:            true,
	KindScroll:          true,
	KindHover:           true,
	KindDoubleClick:     true,
	KindRightClick:      true,
	KindPressKey:        true,
	KindSelectOption:    true,
	KindCheckCheckbox:   true,
	KindUncheckCheckbox: true,
	KindWait:            true,
	KindNavigate:        true,
	KindMoveCursor:      true,
	KindMouseClick:      true,
}

// Scroll directions accepted by scroll actions.
const (
	ScrollDown      = "down"
	ScrollUp        = "up"
	ScrollTop       = "top"
	ScrollBottom    = "bottom"
	ScrollToElement = "to_element"
)

// Wait conditions accepted by wait actions.
const (
	CondElementVisible   = "element_visible"
	CondElementClickable = "element_clickable"
)

// Defaults applied at execution time when the optional field is absent.
const (
	defaultScrollAmount = 500
	defaultWaitSeconds  = 1.0
	maxClickCount       = 3
)

// Action is one entry in an interaction batch. Type selects the kind;
// the remaining fields form a union and only the subset relevant to the
// kind is consulted. WaitAfter is honored for every kind.
type Action struct {
	Type    Kind        `json:"type"`
	Element *ElementRef `json:"element,omitempty"`

	// WaitAfter pauses after the action completes, in seconds.
	WaitAfter float64 `json:"wait_after,omitempty"`

	// fill
	Text       string `json:"text,omitempty"`
	ClearFirst *bool  `json:"clear_first,omitempty"`

	// scroll
	Direction string `json:"direction,omitempty"`
	Amount    int    `json:"amount,omitempty"`

	// press_key
	Key string `json:"key,omitempty"`

	// select_option
	OptionValue string `json:"option_value,omitempty"`
	OptionText  string `json:"option_text,omitempty"`

	// wait
	Seconds   float64 `json:"seconds,omitempty"`
	Condition string  `json:"condition,omitempty"`

	// navigate
	URL string `json:"url,omitempty"`

	// move_cursor / mouse_click
	X               *int   `json:"x,omitempty"`
	Y               *int   `json:"y,omitempty"`
	RelativeX       *int   `json:"relative_x,omitempty"`
	RelativeY       *int   `json:"relative_y,omitempty"`
	CenterOnElement bool   `json:"center_on_element,omitempty"`
	Button          string `json:"button,omitempty"`
	ClickCount      int    `json:"click_count,omitempty"`
}

// ParseActions decodes a JSON array of actions, rejecting unknown kinds
// and unknown fields up front so a malformed batch fails before any
// browser state changes.
func ParseActions(data []byte) ([]Action, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("actions must be a JSON array: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("actions array is empty")
	}

	actions := make([]Action, 0, len(raw))
	for i, entry := range raw {
		dec := json.NewDecoder(bytes.NewReader(entry))
		dec.DisallowUnknownFields()

		var a Action
		if err := dec.Decode(&a); err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Validate checks kind membership and the per-kind required fields that
// can be verified without a page.
func (a *Action) Validate() error {
	if !validKinds[a.Type] {
		return fmt.Errorf("unknown action type %q", a.Type)
	}

	switch a.Type {
	case KindPressKey:
		if a.Key == "" {
			return fmt.Errorf("press_key action requires a key")
		}
	case KindNavigate:
		if a.URL == "" {
			return fmt.Errorf("navigate action requires a url")
		}
	case KindScroll:
		switch a.Direction {
		case "", ScrollDown, ScrollUp, ScrollTop, ScrollBottom, ScrollToElement:
		default:
			return fmt.Errorf("unknown scroll direction %q", a.Direction)
		}
	case KindWait:
		switch a.Condition {
		case "", CondElementVisible, CondElementClickable:
		default:
			return fmt.Errorf("unknown wait condition %q", a.Condition)
		}
	case KindMouseClick:
		switch a.Button {
		case "", "left", "right", "middle":
		default:
			return fmt.Errorf("unknown mouse button %q", a.Button)
		}
		if a.ClickCount < 0 || a.ClickCount > maxClickCount {
			return fmt.Errorf("click_count must be between 1 and %d", maxClickCount)
		}
	}

	if a.WaitAfter < 0 {
		return fmt.Errorf("wait_after must not be negative")
	}
	return nil
}

// clearFirst reports whether a fill should replace existing content.
// Absent means true.
func (a *Action) clearFirst() bool {
	return a.ClearFirst == nil || *a.ClearFirst
}
