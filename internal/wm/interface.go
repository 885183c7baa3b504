package wm

import (
	"context"
	"errors"
)

// ErrMandatoryQuery marks a failed monitor or client query. The window list
// cannot be trusted after it, so callers must not show a partial list.
var ErrMandatoryQuery = errors.New("mandatory compositor query failed")

type Compositor interface {
	// Fetch queries windows, monitor geometry, active workspace and active window
	Fetch(ctx context.Context) (Snapshot, error)
	// FocusWindow brings the window with the given id to front
	FocusWindow(ctx context.Context, id uint64) error
	// Name returns the compositor name for logging/display
	Name() string
}

// Window is one open client as reported by the compositor.
type Window struct {
	ID      uint64
	Desktop uint32
	Title   string
	Class   string
}

// Geometry is the size of the primary monitor.
type Geometry struct {
	Width  uint32
	Height uint32
}

// Snapshot is the result of a single Fetch. Desktop and Active are 0 when
// the compositor could not report them.
type Snapshot struct {
	Windows  []Window
	Geometry Geometry
	Desktop  uint32
	Active   uint64
}
