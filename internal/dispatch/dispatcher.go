package dispatch

import (
	"context"
	"fmt"

	"winterreise/internal/engine"
	"winterreise/pkg/core"
)

// Key is a pressed key. Printable keys are their rune; KeyEscape stands for Escape.
type Key rune

const (
	KeyEscape Key = 0x1b
	KeySpace  Key = ' '
)

type State int

const (
	AwaitingSelection State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "awaiting_selection"
}

// Reason tells why a session terminated.
type Reason int

const (
	None Reason = iota
	Cancelled
	ToggledPrevious
	Selected
	Ignored
	FocusLost
)

func (r Reason) String() string {
	switch r {
	case Cancelled:
		return "cancelled"
	case ToggledPrevious:
		return "toggled_previous"
	case Selected:
		return "selected"
	case Ignored:
		return "ignored"
	case FocusLost:
		return "focus_lost"
	default:
		return "none"
	}
}

// Outcome is the terminal result of a session. Window is set for Selected.
type Outcome struct {
	Reason Reason
	Window uint64
}

// PreviousStore is the persisted previous-window record.
type PreviousStore interface {
	Read() (uint64, bool)
	Write(id uint64) error
}

// Focuser activates a window.
type Focuser interface {
	FocusWindow(ctx context.Context, id uint64) error
}

// Dispatcher turns key presses into one terminal outcome per session.
type Dispatcher struct {
	hints    engine.HintMap
	active   uint64
	store    PreviousStore
	focuser  Focuser
	notifier core.Notifier
	log      core.Logger

	previous    uint64
	hasPrevious bool

	state   State
	outcome Outcome
}

// New creates a dispatcher for one session. active is the window that was
// focused when the session started; notifier may be nil.
func New(hints engine.HintMap, active uint64, store PreviousStore, focuser Focuser, notifier core.Notifier, log core.Logger) *Dispatcher {
	previous, ok := store.Read()
	return &Dispatcher{
		hints:       hints,
		active:      active,
		store:       store,
		focuser:     focuser,
		notifier:    notifier,
		log:         log,
		previous:    previous,
		hasPrevious: ok,
	}
}

func (d *Dispatcher) State() State {
	return d.state
}

// Outcome returns the terminal result; Reason is None while awaiting selection.
func (d *Dispatcher) Outcome() Outcome {
	return d.outcome
}

// Previous returns the previous window read when the session started.
func (d *Dispatcher) Previous() (uint64, bool) {
	return d.previous, d.hasPrevious
}

// Dispatch handles one key press and reports whether it was consumed.
// Keys arriving after termination are not consumed.
func (d *Dispatcher) Dispatch(ctx context.Context, key Key) bool {
	if d.state == Terminated {
		return false
	}

	switch {
	case key == KeyEscape:
		d.cancel()
		return true

	case key == KeySpace:
		if d.hasPrevious {
			d.log.Info("Previous window", "id", fmt.Sprintf("0x%x", d.previous))
		} else {
			d.log.Info("No previous window recorded")
		}
		d.terminate(Outcome{Reason: ToggledPrevious})
		return true

	case key >= '1' && key <= '9':
		// TODO: switch the view to this desktop once the desktop-switch behaviour is decided.
		desktop := uint32(key - '1')
		d.log.Debug("Desktop key pressed, ignoring", "desktop", desktop)
		d.terminate(Outcome{Reason: Ignored})
		return true
	}

	code, ok := engine.HintCode(rune(key))
	if !ok {
		return false
	}
	id, ok := d.hints.Lookup(code)
	if !ok {
		d.log.Debug("No window for hint", "hint", string(engine.HintLetter(code)))
		return false
	}

	d.Select(ctx, id)
	return true
}

// Select focuses id and terminates the session. A focus failure is
// reported but still ends the session as Selected.
func (d *Dispatcher) Select(ctx context.Context, id uint64) {
	if d.state == Terminated {
		return
	}

	d.log.Info("Going to window", "id", fmt.Sprintf("0x%x", id))
	if err := d.focuser.FocusWindow(ctx, id); err != nil {
		d.log.Error("Failed to focus window", err, "id", fmt.Sprintf("0x%x", id))
		if d.notifier != nil {
			if nerr := d.notifier.Error("Window switch failed", err.Error()); nerr != nil {
				d.log.Warn("Failed to show notification", "error", nerr.Error())
			}
		}
	}
	d.terminate(Outcome{Reason: Selected, Window: id})
}

// FocusLost ends the session without recording a previous window.
func (d *Dispatcher) FocusLost() {
	if d.state == Terminated {
		return
	}
	d.terminate(Outcome{Reason: FocusLost})
}

func (d *Dispatcher) cancel() {
	if d.active == 0 {
		d.log.Warn("Active window unknown, previous window not recorded")
	} else if err := d.store.Write(d.active); err != nil {
		d.log.Error("Failed to record previous window", err, "id", d.active)
	}
	d.terminate(Outcome{Reason: Cancelled})
}

func (d *Dispatcher) terminate(o Outcome) {
	d.state = Terminated
	d.outcome = o
	d.log.Debug("Session terminated", "reason", o.Reason.String(), "window", o.Window)
}
