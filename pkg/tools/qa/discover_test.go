package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePage = `<!DOCTYPE html>
<html>
<body>
  <a href="/home">Home</a>
  <a>No href anchor</a>
  <button id="submit-btn">Submit</button>
  <input type="text" name="email" placeholder="Email address">
  <input type="hidden" name="csrf" value="tok">
  <input type="submit" value="Go">
  <select name="country"><option>NZ</option></select>
  <textarea id="notes"></textarea>
</body>
</html>`

func TestScanInteractiveElements(t *testing.T) {
	elements, err := scanInteractiveElements(fixturePage)
	require.NoError(t, err)

	require.Len(t, elements.Links, 1, "anchors without href are not interactive")
	assert.Equal(t, "Home", elements.Links[0].Label)

	require.Len(t, elements.Buttons, 2, "submit inputs count as buttons")
	assert.Equal(t, "Submit", elements.Buttons[0].Label)
	assert.Equal(t, "#submit-btn", elements.Buttons[0].Selector)
	assert.Equal(t, "Go", elements.Buttons[1].Label)

	require.Len(t, elements.Inputs, 1, "hidden inputs are excluded")
	assert.Equal(t, "Email address", elements.Inputs[0].Label)
	assert.Equal(t, "[name='email']", elements.Inputs[0].Selector)

	require.Len(t, elements.Selects, 2)
	assert.Equal(t, "[name='country']", elements.Selects[0].Selector)
	assert.Equal(t, "#notes", elements.Selects[1].Selector)
}

func TestScanInteractiveElementsCapsCategories(t *testing.T) {
	page := "<html><body>"
	for i := 0; i < maxPerCategory+10; i++ {
		page += `<button>b</button>`
	}
	page += "</body></html>"

	elements, err := scanInteractiveElements(page)
	require.NoError(t, err)
	assert.Len(t, elements.Buttons, maxPerCategory)
}

func TestSuggestSelectorFallsBackToText(t *testing.T) {
	elements, err := scanInteractiveElements(`<html><body><button>Plain label</button></body></html>`)
	require.NoError(t, err)
	require.Len(t, elements.Buttons, 1)
	assert.Equal(t, "text=Plain label", elements.Buttons[0].Selector)
}

func TestFormatElementListing(t *testing.T) {
	elements, err := scanInteractiveElements(fixturePage)
	require.NoError(t, err)

	out := formatElementListing("http://localhost/app", elements)
	assert.Contains(t, out, "Interactive elements on http://localhost/app:")
	assert.Contains(t, out, "Buttons (2):")
	assert.Contains(t, out, "- Submit  selector: #submit-btn")
	assert.Contains(t, out, "Links (1):")
}

func TestFormatElementListingEmptyCategory(t *testing.T) {
	out := formatElementListing("http://x", &pageElements{})
	assert.Contains(t, out, "Buttons (0):")
	assert.Contains(t, out, "(none)")
}

func TestNodeTextCollapsesWhitespace(t *testing.T) {
	elements, err := scanInteractiveElements("<html><body><button>  Sign\n  in </button></body></html>")
	require.NoError(t, err)
	require.Len(t, elements.Buttons, 1)
	assert.Equal(t, "Sign in", elements.Buttons[0].Label)
}
