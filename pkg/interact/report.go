package interact

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result records the outcome of one action. Index is 1-based so records
// read naturally in logs and tool output.
type Result struct {
	Index   int    `json:"index"`
	Kind    Kind   `json:"kind"`
	Element string `json:"element,omitempty"`
	Message string `json:"message"`
	Failed  bool   `json:"failed,omitempty"`
}

// Report collects one Result per action in a batch, in order. A failed
// action contributes a failure record; the batch continues, so the report
// always has exactly as many entries as the batch had actions.
type Report struct {
	ID        string        `json:"id"`
	URL       string        `json:"url,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Results   []Result      `json:"results"`
}

// NewReport creates an empty report for the page at url.
func NewReport(url string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		URL:       url,
		StartedAt: time.Now(),
	}
}

// Success appends a success record for the action at the given 1-based
// index.
func (r *Report) Success(index int, kind Kind, message string) {
	r.Results = append(r.Results, Result{
		Index:   index,
		Kind:    kind,
		Message: message,
	})
}

// Failure appends a failure record. element carries the locator
// descriptor when the action targeted an element, empty otherwise.
func (r *Report) Failure(index int, kind Kind, element, message string) {
	r.Results = append(r.Results, Result{
		Index:   index,
		Kind:    kind,
		Element: element,
		Message: message,
		Failed:  true,
	})
}

// Failures returns only the failed records.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Failed {
			failed = append(failed, res)
		}
	}
	return failed
}

// HasFailures reports whether any action in the batch failed.
func (r *Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Failed {
			return true
		}
	}
	return false
}

// String renders the report in the line-per-action form surfaced to tool
// callers.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page Interaction Results for %s:\n", r.URL)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")

	for _, res := range r.Results {
		if res.Failed {
			elem := ""
			if res.Element != "" {
				elem = fmt.Sprintf(" (element: %s)", res.Element)
			}
			fmt.Fprintf(&b, "Action %d (%s) failed%s: %s\n", res.Index, res.Kind, elem, res.Message)
			continue
		}
		fmt.Fprintf(&b, "Action %d: %s\n", res.Index, res.Message)
	}
	return b.String()
}
