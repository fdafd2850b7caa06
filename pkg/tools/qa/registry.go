package qa

import (
	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/entrhq/qapilot/pkg/tools"
)

// ToolRegistry wires the QA tools to a shared browser session manager.
// All tools operate on the same manager, so a page opened by one call is
// still there for the next.
type ToolRegistry struct {
	manager *browser.Manager
	tools   []tools.Tool
}

// NewToolRegistry creates a registry backed by manager.
func NewToolRegistry(manager *browser.Manager) *ToolRegistry {
	return &ToolRegistry{manager: manager}
}

// RegisterTools creates and returns all QA tools.
func (r *ToolRegistry) RegisterTools() []tools.Tool {
	if len(r.tools) > 0 {
		return r.tools
	}

	r.tools = append(r.tools,
		NewInteractTool(r.manager),
		NewScreenshotTool(r.manager),
		NewDiscoverTool(r.manager),
		NewCloseSessionTool(r.manager),
	)
	return r.tools
}

// GetTools returns the current set of registered tools.
func (r *ToolRegistry) GetTools() []tools.Tool {
	return r.tools
}

// GetManager returns the underlying session manager.
func (r *ToolRegistry) GetManager() *browser.Manager {
	return r.manager
}
