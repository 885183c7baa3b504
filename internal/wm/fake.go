package wm

import (
	"context"
	"sync"
)

// Fake is an in-memory Compositor returning a fixed snapshot. It records
// every focus request.
type Fake struct {
	Snapshot Snapshot
	FetchErr error
	FocusErr error

	mu      sync.Mutex
	focused []uint64
}

func NewFake(snapshot Snapshot) *Fake {
	return &Fake{Snapshot: snapshot}
}

func (f *Fake) Name() string {
	return "Fake"
}

func (f *Fake) Fetch(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if f.FetchErr != nil {
		return Snapshot{}, f.FetchErr
	}
	s := f.Snapshot
	s.Windows = append([]Window(nil), f.Snapshot.Windows...)
	return s, nil
}

func (f *Fake) FocusWindow(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = append(f.focused, id)
	return f.FocusErr
}

// Focused returns the ids passed to FocusWindow, in call order.
func (f *Fake) Focused() []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint64(nil), f.focused...)
}
