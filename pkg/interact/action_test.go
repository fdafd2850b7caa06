package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActions(t *testing.T) {
	data := []byte(`[
		{"type": "navigate", "url": "http://localhost/login"},
		{"type": "fill", "element": {"selector": "#email"}, "text": "a@b.c"},
		{"type": "click", "element": {"selector": "#submit"}, "wait_after": 1.5},
		{"type": "wait", "condition": "element_visible", "element": {"selector": ".dashboard"}, "seconds": 5}
	]`)

	actions, err := ParseActions(data)
	require.NoError(t, err)
	require.Len(t, actions, 4)

	assert.Equal(t, KindNavigate, actions[0].Type)
	assert.Equal(t, "http://localhost/login", actions[0].URL)

	assert.Equal(t, KindFill, actions[1].Type)
	assert.Equal(t, "a@b.c", actions[1].Text)
	assert.True(t, actions[1].clearFirst(), "clear_first defaults to true")

	assert.Equal(t, 1.5, actions[2].WaitAfter)

	assert.Equal(t, CondElementVisible, actions[3].Condition)
	assert.Equal(t, 5.0, actions[3].Seconds)
}

func TestParseActionsRejectsUnknownKind(t *testing.T) {
	_, err := ParseActions([]byte(`[{"type": "teleport"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 1")
	assert.Contains(t, err.Error(), "teleport")
}

func TestParseActionsRejectsUnknownField(t *testing.T) {
	_, err := ParseActions([]byte(`[{"type": "click", "elemnt": {"selector": "#a"}}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 1")
}

func TestParseActionsRejectsNonArray(t *testing.T) {
	_, err := ParseActions([]byte(`{"type": "click"}`))
	assert.Error(t, err)
}

func TestParseActionsRejectsEmptyArray(t *testing.T) {
	_, err := ParseActions([]byte(`[]`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		wantErr string
	}{
		{"press_key needs key", Action{Type: KindPressKey}, "requires a key"},
		{"navigate needs url", Action{Type: KindNavigate}, "requires a url"},
		{"scroll rejects bad direction", Action{Type: KindScroll, Direction: "sideways"}, "scroll direction"},
		{"wait rejects bad condition", Action{Type: KindWait, Condition: "page_quiet"}, "wait condition"},
		{"mouse_click rejects bad button", Action{Type: KindMouseClick, Button: "back"}, "mouse button"},
		{"mouse_click caps click count", Action{Type: KindMouseClick, ClickCount: 7}, "click_count"},
		{"negative wait_after", Action{Type: KindClick, WaitAfter: -1}, "wait_after"},
		{"valid click", Action{Type: KindClick}, ""},
		{"valid scroll default direction", Action{Type: KindScroll}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestClearFirst(t *testing.T) {
	f := false
	tr := true

	a := Action{Type: KindFill}
	assert.True(t, a.clearFirst())

	a.ClearFirst = &tr
	assert.True(t, a.clearFirst())

	a.ClearFirst = &f
	assert.False(t, a.clearFirst())
}
