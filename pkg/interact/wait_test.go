package interact

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTimeoutErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"driver wait timeout", errors.New("playwright: Timeout 5000ms exceeded while waiting for selector \"#a\""), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("wait failed: %w", context.DeadlineExceeded), true},
		{"selector syntax error", errors.New(`playwright: Unknown engine "bogus" while parsing selector`), false},
		{"connection failure", errors.New("playwright: websocket: close 1006"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTimeoutErr(tt.err))
		})
	}
}
