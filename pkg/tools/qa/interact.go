package qa

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/entrhq/qapilot/pkg/config"
	"github.com/entrhq/qapilot/pkg/interact"
	"github.com/entrhq/qapilot/pkg/tools"
)

// InteractTool executes a batch of structured page actions against the
// shared browser session.
type InteractTool struct {
	manager    *browser.Manager
	dispatcher *interact.Dispatcher
}

// NewInteractTool creates a new page interaction tool.
func NewInteractTool(manager *browser.Manager) *InteractTool {
	return &InteractTool{
		manager:    manager,
		dispatcher: interact.NewDispatcher(interact.DefaultElementTimeout),
	}
}

// Name returns the tool name.
func (t *InteractTool) Name() string {
	return "interact_with_page"
}

// Description returns the tool description.
func (t *InteractTool) Description() string {
	return "Perform a sequence of interactions on a web page: click, fill, scroll, hover, " +
		"press keys, select options, toggle checkboxes, wait, navigate, and raw mouse control. " +
		"Actions run in order; a failed action is reported and the rest of the batch continues. " +
		"The browser session persists across calls, so login state and cookies survive."
}

// Schema returns the tool's JSON schema.
func (t *InteractTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"page_url": map[string]interface{}{
				"type":        "string",
				"description": "URL of the page to interact with (must include protocol)",
			},
			"actions": map[string]interface{}{
				"type":        "string",
				"description": `JSON array of actions, e.g. [{"type":"click","element":{"selector":"#submit"}}]`,
			},
			"storage_dir": map[string]interface{}{
				"type":        "string",
				"description": "Browser profile directory override; defaults to the configured storage dir",
			},
			"wait_seconds": map[string]interface{}{
				"type":        "integer",
				"description": "Seconds to wait for the page to be ready before acting (default from config)",
			},
			"headless": map[string]interface{}{
				"type":        "boolean",
				"description": "Run the browser without a visible window for this call (default from config)",
			},
		},
		[]string{"page_url", "actions"},
	)
}

// InteractInput represents the parameters for page interaction.
type InteractInput struct {
	XMLName     xml.Name `xml:"arguments"`
	PageURL     string   `xml:"page_url"`
	Actions     string   `xml:"actions"`
	StorageDir  string   `xml:"storage_dir"`
	WaitSeconds int      `xml:"wait_seconds"`
	Headless    *bool    `xml:"headless"`
}

// Execute navigates to the page (skipped when already there) and runs the
// action batch, returning the per-action report.
func (t *InteractTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input InteractInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.PageURL == "" {
		return "", nil, fmt.Errorf("page_url is required")
	}
	if input.Actions == "" {
		return "", nil, fmt.Errorf("actions is required")
	}

	actions, err := interact.ParseActions([]byte(input.Actions))
	if err != nil {
		return "", nil, err
	}

	storageDir, headless, waitSeconds := sessionSettings(input.StorageDir, input.Headless)
	if input.WaitSeconds > 0 {
		waitSeconds = input.WaitSeconds
	}

	var report *interact.Report
	err = t.manager.WithSession(storageDir, headless, func(s *browser.Session) error {
		if err := s.Navigate(input.PageURL); err != nil {
			return err
		}
		if err := s.WaitReady(float64(waitSeconds) * 1000); err != nil {
			return err
		}
		report = t.dispatcher.Execute(ctx, s, s.Page.URL(), actions)
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	metadata := map[string]interface{}{
		"report_id":    report.ID,
		"action_count": len(actions),
		"failed":       report.HasFailures(),
	}
	return report.String(), metadata, nil
}

// sessionSettings resolves the session binding from the per-call overrides
// plus configuration, falling back to package defaults when configuration
// was never initialized.
func sessionSettings(storageDirOverride string, headlessOverride *bool) (storageDir string, headless bool, waitSeconds int) {
	storageDir = storageDirOverride
	headless = true
	waitSeconds = 3

	if cfg := config.GetBrowser(); cfg != nil {
		if storageDir == "" {
			storageDir = cfg.GetStorageDir()
		}
		headless = cfg.IsHeadless()
		waitSeconds = cfg.GetWaitSeconds()
	}
	if headlessOverride != nil {
		headless = *headlessOverride
	}
	if storageDir == "" {
		storageDir = browser.DefaultStorageDir
	}
	return storageDir, headless, waitSeconds
}
