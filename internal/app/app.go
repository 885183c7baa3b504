package app

import (
	"context"
	"fmt"
	"io"

	"winterreise/internal/dispatch"
	"winterreise/internal/prevwin"
	"winterreise/internal/wm"
	"winterreise/pkg/config"
	"winterreise/pkg/core"
)

// View is everything a presenter needs to draw one session and feed key
// presses back.
type View struct {
	Title      string
	Rows       []Row
	Geometry   wm.Geometry
	Spacing    int
	Dispatcher *dispatch.Dispatcher
}

// Presenter shows a view and blocks until the dispatcher terminates.
type Presenter interface {
	Present(ctx context.Context, view View) error
}

type Winterreise struct {
	cfg       *config.Config
	comp      wm.Compositor
	presenter Presenter
	notifier  core.Notifier
	log       core.Logger
}

func NewWinterreise(cfg *config.Config, comp wm.Compositor, presenter Presenter, notifier core.Notifier, log core.Logger) *Winterreise {
	return &Winterreise{
		cfg:       cfg,
		comp:      comp,
		presenter: presenter,
		notifier:  notifier,
		log:       log,
	}
}

// Run executes one switcher session and returns how it ended. Errors are
// returned only for failures that happen before anything is shown.
func (w *Winterreise) Run(ctx context.Context, currentOnly bool) (dispatch.Outcome, error) {
	path, err := w.cfg.PrevWindowPath()
	if err != nil {
		return dispatch.Outcome{}, fmt.Errorf("failed to resolve previous-window file: %w", err)
	}

	session := NewSession(w.cfg, w.comp, w.log)
	if err := session.Prepare(ctx, currentOnly); err != nil {
		return dispatch.Outcome{}, err
	}

	store, err := prevwin.Open(path, w.log)
	if err != nil {
		return dispatch.Outcome{}, err
	}
	defer store.Close()

	snapshot := session.Snapshot()
	d := dispatch.New(session.Hints(), snapshot.Active, store, w.comp, w.notifier, w.log)

	view := View{
		Title:      "Jump to...",
		Rows:       session.Rows(),
		Geometry:   snapshot.Geometry,
		Spacing:    w.cfg.GetSpacing(),
		Dispatcher: d,
	}
	if err := w.presenter.Present(ctx, view); err != nil {
		return d.Outcome(), fmt.Errorf("presentation failed: %w", err)
	}

	outcome := d.Outcome()
	w.log.Info("Session finished", "reason", outcome.Reason.String())
	return outcome, nil
}

// List prints the rows a session would show without presenting them.
func (w *Winterreise) List(ctx context.Context, out io.Writer, currentOnly bool, format string) error {
	session := NewSession(w.cfg, w.comp, w.log)
	if err := session.Prepare(ctx, currentOnly); err != nil {
		return err
	}
	return WriteRows(out, session.Rows(), format)
}
