package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		wantKnown bool
	}{
		{"enter", "Enter", true},
		{"Enter", "Enter", true},
		{"ESCAPE", "Escape", true},
		{"esc", "Escape", true},
		{"tab", "Tab", true},
		{"up", "ArrowUp", true},
		{"page_down", "PageDown", true},
		{"ctrl+a", "Control+a", true},
		{"Ctrl+C", "Control+c", true},
		{"hello world", "", false},
		{"ctrl+q", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, known := mapKey(tt.in)
			assert.Equal(t, tt.wantKnown, known)
			if tt.wantKnown {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMouseButton(t *testing.T) {
	for _, name := range []string{"", "left", "right", "middle"} {
		b, err := mouseButton(name)
		assert.NoError(t, err)
		assert.NotNil(t, b)
	}

	_, err := mouseButton("back")
	assert.Error(t, err)
}

func TestButtonName(t *testing.T) {
	assert.Equal(t, "left", buttonName(""))
	assert.Equal(t, "right", buttonName("right"))
}
