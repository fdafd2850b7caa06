package qa

import (
	"context"
	"fmt"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/entrhq/qapilot/pkg/tools"
)

// CloseSessionTool terminates the shared browser session and reclaims
// its profile lock artifacts.
type CloseSessionTool struct {
	manager *browser.Manager
}

// NewCloseSessionTool creates a new close session tool.
func NewCloseSessionTool(manager *browser.Manager) *CloseSessionTool {
	return &CloseSessionTool{manager: manager}
}

// Name returns the tool name.
func (t *CloseSessionTool) Name() string {
	return "close_session"
}

// Description returns the tool description.
func (t *CloseSessionTool) Description() string {
	return "Terminate the persistent browser session. Cookies and profile data are kept " +
		"on disk, so the next interaction starts a fresh process with the same login state."
}

// Schema returns the tool's JSON schema.
func (t *CloseSessionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute closes the session. Closing when no session exists is not an
// error.
func (t *CloseSessionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	hadSession := t.manager.Current() != nil

	if err := t.manager.Quit(); err != nil {
		return "", nil, fmt.Errorf("failed to close browser session: %w", err)
	}

	if !hadSession {
		return "No browser session was active.", nil, nil
	}
	return "Browser session closed. Profile data was preserved for the next session.", nil, nil
}
