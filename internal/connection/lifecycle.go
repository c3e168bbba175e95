package connection

import (
	"context"
	"errors"
	"log/slog"

	"github.com/looplab/fsm"
)

// Bridge lifecycle states.
const (
	StateIdle       = "idle"
	StateConnecting = "connecting"
	StateOpen       = "open"
	StateClosed     = "closed"
	StateStopped    = "stopped"
)

// Bridge lifecycle events.
const (
	EventDial   = "dial"
	EventOpened = "opened"
	EventDrop   = "drop"
	EventStop   = "stop"
)

// Lifecycle tracks connecting -> open -> closed -> connecting -> ...
// Stopped is terminal.
type Lifecycle struct {
	fsm    *fsm.FSM
	logger *slog.Logger
}

// NewLifecycle creates a lifecycle in the idle state.
func NewLifecycle(logger *slog.Logger) *Lifecycle {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Lifecycle{logger: logger}
	l.fsm = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventDial, Src: []string{StateIdle, StateConnecting, StateOpen, StateClosed}, Dst: StateConnecting},
			{Name: EventOpened, Src: []string{StateConnecting}, Dst: StateOpen},
			{Name: EventDrop, Src: []string{StateConnecting, StateOpen}, Dst: StateClosed},
			{Name: EventStop, Src: []string{StateIdle, StateConnecting, StateOpen, StateClosed}, Dst: StateStopped},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				l.logger.Debug("bridge state changed", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
	return l
}

// Fire applies event. Re-entering the current state is not an error.
func (l *Lifecycle) Fire(event string) error {
	err := l.fsm.Event(context.Background(), event)

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	return err
}

// Current returns the current state.
func (l *Lifecycle) Current() string {
	return l.fsm.Current()
}

// Is reports whether the lifecycle is in state.
func (l *Lifecycle) Is(state string) bool {
	return l.fsm.Is(state)
}
