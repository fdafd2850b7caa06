package interact

import (
	"fmt"
	"sort"
	"strings"
)

// ElementRef describes how to find an element on the page. Multiple
// strategies may be populated; Resolve applies them in a fixed precedence
// order so a reference always maps to exactly one query:
//
//  1. Attributes: a CSS attribute query built from every key/value pair.
//  2. Selector (with ByType, default "css").
//  3. Text and TagName: an XPath exact-text query scoped to the tag.
//  4. Text alone: an XPath exact-text query over all elements.
//
// A reference with none of these populated is invalid.
type ElementRef struct {
	Selector   string            `json:"selector,omitempty"`
	ByType     string            `json:"by_type,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Text       string            `json:"text,omitempty"`
	TagName    string            `json:"tag_name,omitempty"`
}

// Locator strategy names accepted in ByType.
const (
	ByCSS         = "css"
	ByXPath       = "xpath"
	ByID          = "id"
	ByName        = "name"
	ByClass       = "class"
	ByTag         = "tag"
	ByText        = "text"
	ByPartialText = "partial_text"
)

// Resolve reduces the reference to a single (query, strategy) pair by
// precedence. Attribute keys are sorted so the same reference always
// produces the same query string.
func (r *ElementRef) Resolve() (query, strategy string, err error) {
	switch {
	case len(r.Attributes) > 0:
		keys := make([]string, 0, len(r.Attributes))
		for k := range r.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "[%s='%s']", k, r.Attributes[k])
		}
		return b.String(), ByCSS, nil

	case r.Selector != "":
		strategy = r.ByType
		if strategy == "" {
			strategy = ByCSS
		}
		return r.Selector, strategy, nil

	case r.Text != "" && r.TagName != "":
		return fmt.Sprintf("//%s[text()='%s']", r.TagName, r.Text), ByXPath, nil

	case r.Text != "":
		return fmt.Sprintf("//*[text()='%s']", r.Text), ByXPath, nil
	}

	return "", "", ErrInvalidLocator
}

// Descriptor renders the reference as "strategy='query'" for failure
// records. An unresolvable reference yields an empty descriptor.
func (r *ElementRef) Descriptor() string {
	query, strategy, err := r.Resolve()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s='%s'", strategy, query)
}

// playwrightSelector converts the resolved query into the driver's
// selector syntax. Strategies beyond css and xpath are sugar over css.
func (r *ElementRef) playwrightSelector() (string, error) {
	query, strategy, err := r.Resolve()
	if err != nil {
		return "", err
	}

	switch strategy {
	case ByXPath:
		return "xpath=" + query, nil
	case ByID:
		return "#" + query, nil
	case ByName:
		return fmt.Sprintf("[name='%s']", query), nil
	case ByClass:
		return "." + query, nil
	case ByTag:
		return query, nil
	case ByText:
		return fmt.Sprintf(`text="%s"`, query), nil
	case ByPartialText:
		return "text=" + query, nil
	default:
		return query, nil
	}
}
