package browser

import (
	"errors"
	"fmt"
)

// ErrSessionLost indicates the browser process stopped responding while a
// caller was using it. The next RestartIfUnhealthy recovers it; the current
// batch is not retried.
var ErrSessionLost = errors.New("browser session lost")

// StartError indicates the browser process failed to launch even after lock
// reclamation. It is fatal to the current Acquire call and is not retried.
type StartError struct {
	Dir string
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start browser session in %s: %v", e.Dir, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}
