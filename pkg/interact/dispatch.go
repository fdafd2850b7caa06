package interact

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/qapilot/pkg/browser"
	"github.com/entrhq/qapilot/pkg/logging"
	"github.com/playwright-community/playwright-go"
)

// DefaultElementTimeout bounds how long an element lookup waits before
// the action is recorded as failed.
const DefaultElementTimeout = 10 * time.Second

type handlerFunc func(ctx context.Context, s *browser.Session, a Action) (string, error)

// Dispatcher executes action batches against a browser session. Each
// action is isolated: a failure is recorded and the batch continues, so
// one bad selector does not discard the rest of a QA script. Relative
// cursor moves track the last position the dispatcher moved the mouse
// to, starting at the origin.
type Dispatcher struct {
	elementTimeout time.Duration
	logger         *logging.Logger

	// handlers maps each kind to its executor; tests substitute entries
	// to exercise dispatch without a live page.
	handlers map[Kind]handlerFunc

	cursorX float64
	cursorY float64
}

// NewDispatcher creates a dispatcher with the given element lookup
// timeout. A non-positive timeout falls back to DefaultElementTimeout.
func NewDispatcher(elementTimeout time.Duration) *Dispatcher {
	if elementTimeout <= 0 {
		elementTimeout = DefaultElementTimeout
	}
	logger, _ := logging.NewLogger("interact")

	d := &Dispatcher{
		elementTimeout: elementTimeout,
		logger:         logger,
	}
	d.handlers = map[Kind]handlerFunc{
		KindClick:           d.execClick,
		KindFill:            d.execFill,
		KindScroll:          d.execScroll,
		KindHover:           d.execHover,
		KindDoubleClick:     d.execDoubleClick,
		KindRightClick:      d.execRightClick,
		KindPressKey:        d.execPressKey,
		KindSelectOption:    d.execSelectOption,
		KindCheckCheckbox:   d.execCheck,
		KindUncheckCheckbox: d.execUncheck,
		KindWait:            d.execWait,
		KindNavigate:        d.execNavigate,
		KindMoveCursor:      d.execMoveCursor,
		KindMouseClick:      d.execMouseClick,
	}
	return d
}

// Execute runs the batch in order against session, producing one report
// entry per action. pageURL only labels the report. Cancellation of ctx
// records the remaining actions as failed rather than dropping them
// silently.
func (d *Dispatcher) Execute(ctx context.Context, session *browser.Session, pageURL string, actions []Action) *Report {
	report := NewReport(pageURL)

	// Relative cursor moves are scoped to one batch; a new script starts
	// from the origin, not wherever the previous script left the mouse.
	d.cursorX, d.cursorY = 0, 0

	for i, a := range actions {
		index := i + 1

		if err := ctx.Err(); err != nil {
			report.Failure(index, a.Type, elementDescriptor(a), "batch canceled: "+err.Error())
			continue
		}

		handler, ok := d.handlers[a.Type]
		if !ok {
			report.Failure(index, a.Type, elementDescriptor(a), fmt.Sprintf("unknown action type %q", a.Type))
			continue
		}

		message, err := handler(ctx, session, a)
		if err != nil {
			d.logger.Warnf("action %d (%s) failed: %v", index, a.Type, err)
			report.Failure(index, a.Type, elementDescriptor(a), err.Error())
		} else {
			report.Success(index, a.Type, message)
		}

		if a.WaitAfter > 0 {
			sleepCtx(ctx, secondsToDuration(a.WaitAfter))
		}
	}

	report.Duration = time.Since(report.StartedAt)
	return report
}

// find locates the element named by a's reference within the dispatcher's
// element timeout.
func (d *Dispatcher) find(s *browser.Session, ref *ElementRef) (playwright.ElementHandle, error) {
	return findElement(s, ref, float64(d.elementTimeout.Milliseconds()))
}

// elementDescriptor renders the action's element reference for failure
// records, or "" for actions without one.
func elementDescriptor(a Action) string {
	if a.Element == nil {
		return ""
	}
	return a.Element.Descriptor()
}

// requireElement returns the action's element reference or a uniform
// error for kinds that cannot run without one.
func requireElement(a Action) (*ElementRef, error) {
	if a.Element == nil {
		return nil, fmt.Errorf("missing element reference for %s action", a.Type)
	}
	return a.Element, nil
}

// sleepCtx sleeps for dur or until ctx is canceled.
func sleepCtx(ctx context.Context, dur time.Duration) {
	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
