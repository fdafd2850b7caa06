package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportString(t *testing.T) {
	r := NewReport("http://localhost/login")
	r.Failure(1, KindClick, "css='#missing'", "element not found")
	r.Success(2, KindFill, "Filled element css='#input' with: 'x'")

	out := r.String()
	assert.Contains(t, out, "Page Interaction Results for http://localhost/login:")
	assert.Contains(t, out, "Action 1 (click) failed (element: css='#missing'): element not found")
	assert.Contains(t, out, "Action 2: Filled element css='#input' with: 'x'")
}

func TestReportFailureWithoutElement(t *testing.T) {
	r := NewReport("http://x")
	r.Failure(1, KindWait, "", "timed out waiting for condition")

	assert.Contains(t, r.String(), "Action 1 (wait) failed: timed out waiting for condition")
}

func TestReportFailures(t *testing.T) {
	r := NewReport("http://x")
	r.Success(1, KindClick, "Clicked element: css='#a'")
	r.Failure(2, KindFill, "css='#b'", "element not found")
	r.Success(3, KindScroll, "Scrolled down by 500 pixels")

	require.True(t, r.HasFailures())
	failures := r.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, 2, failures[0].Index)
	assert.Equal(t, KindFill, failures[0].Kind)
}

func TestReportNoFailures(t *testing.T) {
	r := NewReport("http://x")
	r.Success(1, KindClick, "Clicked element: css='#a'")

	assert.False(t, r.HasFailures())
	assert.Empty(t, r.Failures())
	assert.NotEmpty(t, r.ID)
}
