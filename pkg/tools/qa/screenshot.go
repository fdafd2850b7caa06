package qa

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/entrhq/qapilot/pkg/tools"
	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

const defaultScreenshotDir = "screenshots"

// ScreenshotTool captures the current page to a PNG file.
type ScreenshotTool struct {
	manager *browser.Manager
}

// NewScreenshotTool creates a new screenshot tool.
func NewScreenshotTool(manager *browser.Manager) *ScreenshotTool {
	return &ScreenshotTool{manager: manager}
}

// Name returns the tool name.
func (t *ScreenshotTool) Name() string {
	return "get_page_screenshot"
}

// Description returns the tool description.
func (t *ScreenshotTool) Description() string {
	return "Capture a screenshot of a web page to a PNG file. Navigates to the page first " +
		"if the session is not already there."
}

// Schema returns the tool's JSON schema.
func (t *ScreenshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"page_url": map[string]interface{}{
				"type":        "string",
				"description": "URL of the page to capture (must include protocol)",
			},
			"full_page": map[string]interface{}{
				"type":        "boolean",
				"description": "Capture the full scrollable page instead of the viewport (default false)",
			},
			"output_path": map[string]interface{}{
				"type":        "string",
				"description": "File to write the PNG to; defaults to screenshots/<id>.png",
			},
		},
		[]string{"page_url"},
	)
}

// ScreenshotInput represents the parameters for a screenshot capture.
type ScreenshotInput struct {
	XMLName    xml.Name `xml:"arguments"`
	PageURL    string   `xml:"page_url"`
	FullPage   bool     `xml:"full_page"`
	OutputPath string   `xml:"output_path"`
}

// Execute captures the page and reports the file it was written to.
func (t *ScreenshotTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input ScreenshotInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.PageURL == "" {
		return "", nil, fmt.Errorf("page_url is required")
	}

	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(defaultScreenshotDir, uuid.NewString()+".png")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0750); err != nil {
		return "", nil, fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	storageDir, headless, waitSeconds := sessionSettings("", nil)

	var size int
	err := t.manager.WithSession(storageDir, headless, func(s *browser.Session) error {
		if err := s.Navigate(input.PageURL); err != nil {
			return err
		}
		if err := s.WaitReady(float64(waitSeconds) * 1000); err != nil {
			return err
		}

		data, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
			Path:     playwright.String(outputPath),
			FullPage: playwright.Bool(input.FullPage),
		})
		if err != nil {
			return fmt.Errorf("screenshot failed: %w", err)
		}
		size = len(data)
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	metadata := map[string]interface{}{
		"path":       outputPath,
		"size_bytes": size,
		"full_page":  input.FullPage,
		"created_at": time.Now().Format(time.RFC3339),
	}
	return fmt.Sprintf("Screenshot of %s saved to %s (%d bytes)", input.PageURL, outputPath, size), metadata, nil
}
