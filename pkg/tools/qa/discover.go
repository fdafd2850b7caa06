package qa

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/entrhq/qapilot/pkg/tools"
	"golang.org/x/net/html"
)

// maxPerCategory bounds how many elements of each kind the discovery
// listing includes, keeping the output readable on busy pages.
const maxPerCategory = 20

// DiscoverTool lists the interactive elements on a page together with
// selectors ready to paste into interact_with_page actions.
type DiscoverTool struct {
	manager *browser.Manager
}

// NewDiscoverTool creates a new element discovery tool.
func NewDiscoverTool(manager *browser.Manager) *DiscoverTool {
	return &DiscoverTool{manager: manager}
}

// Name returns the tool name.
func (t *DiscoverTool) Name() string {
	return "discover_elements"
}

// Description returns the tool description.
func (t *DiscoverTool) Description() string {
	return "List the interactive elements (buttons, links, inputs, selects) on a web page " +
		"with suggested selectors for use in interact_with_page actions."
}

// Schema returns the tool's JSON schema.
func (t *DiscoverTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"page_url": map[string]interface{}{
				"type":        "string",
				"description": "URL of the page to inspect (must include protocol)",
			},
		},
		[]string{"page_url"},
	)
}

// DiscoverInput represents the parameters for element discovery.
type DiscoverInput struct {
	XMLName xml.Name `xml:"arguments"`
	PageURL string   `xml:"page_url"`
}

// Execute fetches the page DOM and renders the interactive element listing.
func (t *DiscoverTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input DiscoverInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.PageURL == "" {
		return "", nil, fmt.Errorf("page_url is required")
	}

	storageDir, headless, waitSeconds := sessionSettings("", nil)

	var content string
	err := t.manager.WithSession(storageDir, headless, func(s *browser.Session) error {
		if err := s.Navigate(input.PageURL); err != nil {
			return err
		}
		if err := s.WaitReady(float64(waitSeconds) * 1000); err != nil {
			return err
		}
		var err error
		content, err = s.Page.Content()
		return err
	})
	if err != nil {
		return "", nil, err
	}

	elements, err := scanInteractiveElements(content)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse page content: %w", err)
	}

	metadata := map[string]interface{}{
		"buttons": len(elements.Buttons),
		"links":   len(elements.Links),
		"inputs":  len(elements.Inputs),
		"selects": len(elements.Selects),
	}
	return formatElementListing(input.PageURL, elements), metadata, nil
}

// pageElement is one discovered interactive element.
type pageElement struct {
	Label    string
	Selector string
}

// pageElements groups discovered elements by kind.
type pageElements struct {
	Buttons []pageElement
	Links   []pageElement
	Inputs  []pageElement
	Selects []pageElement
}

// scanInteractiveElements walks the parsed DOM and collects buttons,
// links, inputs, selects, and textareas with suggested selectors.
func scanInteractiveElements(content string) (*pageElements, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	elements := &pageElements{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "button":
				appendElement(&elements.Buttons, n, nodeText(n))
			case "input":
				inputType := attr(n, "type")
				switch inputType {
				case "hidden":
					// not interactive
				case "submit", "button":
					appendElement(&elements.Buttons, n, attr(n, "value"))
				default:
					appendElement(&elements.Inputs, n, inputLabel(n))
				}
			case "a":
				if attr(n, "href") != "" {
					appendElement(&elements.Links, n, nodeText(n))
				}
			case "select", "textarea":
				appendElement(&elements.Selects, n, inputLabel(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return elements, nil
}

func appendElement(dst *[]pageElement, n *html.Node, label string) {
	if len(*dst) >= maxPerCategory {
		return
	}
	*dst = append(*dst, pageElement{
		Label:    strings.TrimSpace(label),
		Selector: suggestSelector(n, label),
	})
}

// suggestSelector builds the most stable selector available for the
// node: id, then name, then a text locator, then the bare tag.
func suggestSelector(n *html.Node, label string) string {
	if id := attr(n, "id"); id != "" {
		return "#" + id
	}
	if name := attr(n, "name"); name != "" {
		return fmt.Sprintf("[name='%s']", name)
	}
	if text := strings.TrimSpace(label); text != "" {
		return fmt.Sprintf("text=%s", text)
	}
	return n.Data
}

// inputLabel derives a human-readable label for form controls that have
// no text content.
func inputLabel(n *html.Node) string {
	for _, key := range []string{"placeholder", "aria-label", "name", "id"} {
		if v := attr(n, key); v != "" {
			return v
		}
	}
	return n.Data
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates the text content beneath a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func formatElementListing(url string, elements *pageElements) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Interactive elements on %s:\n", url)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")

	writeCategory(&b, "Buttons", elements.Buttons)
	writeCategory(&b, "Links", elements.Links)
	writeCategory(&b, "Inputs", elements.Inputs)
	writeCategory(&b, "Selects", elements.Selects)
	return b.String()
}

func writeCategory(b *strings.Builder, title string, items []pageElement) {
	fmt.Fprintf(b, "\n%s (%d):\n", title, len(items))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		label := item.Label
		if label == "" {
			label = "(unlabeled)"
		}
		fmt.Fprintf(b, "  - %s  selector: %s\n", label, item.Selector)
	}
}
