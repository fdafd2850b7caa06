package qa

import (
	"context"
	"testing"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegistersAllTools(t *testing.T) {
	registry := NewToolRegistry(browser.NewManager())

	registered := registry.RegisterTools()
	require.Len(t, registered, 4)

	names := make(map[string]bool)
	for _, tool := range registered {
		names[tool.Name()] = true
		assert.NotEmpty(t, tool.Description())
		assert.NotNil(t, tool.Schema())
	}
	assert.True(t, names["interact_with_page"])
	assert.True(t, names["get_page_screenshot"])
	assert.True(t, names["discover_elements"])
	assert.True(t, names["close_session"])

	// Registration is memoized
	assert.Equal(t, registered, registry.RegisterTools())
	assert.Equal(t, registered, registry.GetTools())
}

func TestInteractToolRejectsMissingParameters(t *testing.T) {
	tool := NewInteractTool(browser.NewManager())

	_, _, err := tool.Execute(context.Background(), []byte(`<arguments><actions>[]</actions></arguments>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_url is required")

	_, _, err = tool.Execute(context.Background(), []byte(`<arguments><page_url>http://x</page_url></arguments>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actions is required")
}

func TestInteractToolRejectsMalformedActions(t *testing.T) {
	tool := NewInteractTool(browser.NewManager())

	args := []byte(`<arguments><page_url>http://x</page_url><actions>[{"type":"teleport"}]</actions></arguments>`)
	_, _, err := tool.Execute(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestScreenshotToolRequiresURL(t *testing.T) {
	tool := NewScreenshotTool(browser.NewManager())

	_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_url is required")
}

func TestDiscoverToolRequiresURL(t *testing.T) {
	tool := NewDiscoverTool(browser.NewManager())

	_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_url is required")
}

func TestCloseSessionWithoutSession(t *testing.T) {
	tool := NewCloseSessionTool(browser.NewManager())

	result, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.NoError(t, err)
	assert.Contains(t, result, "No browser session was active")
}

func TestSessionSettingsFallbacks(t *testing.T) {
	dir, headless, wait := sessionSettings("", nil)
	assert.NotEmpty(t, dir)
	assert.True(t, headless)
	assert.Positive(t, wait)

	dir, _, _ = sessionSettings("/tmp/override", nil)
	assert.Equal(t, "/tmp/override", dir)
}

func TestSessionSettingsHeadlessOverride(t *testing.T) {
	headed := false
	_, headless, _ := sessionSettings("", &headed)
	assert.False(t, headless, "per-call headless overrides the configured value")

	on := true
	_, headless, _ = sessionSettings("", &on)
	assert.True(t, headless)
}

func TestInteractInputParsesHeadless(t *testing.T) {
	tool := NewInteractTool(browser.NewManager())

	// Malformed actions abort the call after argument parsing, which is
	// enough to confirm the headless flag round-trips through the XML input.
	args := []byte(`<arguments><page_url>http://x</page_url><headless>false</headless><actions>not-json</actions></arguments>`)
	_, _, err := tool.Execute(context.Background(), args)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "invalid parameters", "headless element must decode cleanly")
}
