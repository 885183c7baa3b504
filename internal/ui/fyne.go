package ui

import (
	"context"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"winterreise/internal/app"
	"winterreise/internal/dispatch"
	"winterreise/pkg/core"
)

const (
	appID = "io.github.winterreise"

	rowHeight   = 40
	minWidth    = 400
	maxWidthPct = 0.5
	maxHeight   = 0.8
)

// Fyne presents the session as a window of buttons.
type Fyne struct {
	log core.Logger
}

func NewFyne(log core.Logger) *Fyne {
	return &Fyne{log: log}
}

// Present shows the window and blocks until the session terminates.
func (f *Fyne) Present(ctx context.Context, view app.View) error {
	a := fyneapp.NewWithID(appID)
	w := a.NewWindow(view.Title)
	d := view.Dispatcher

	quitIfDone := func() {
		if d.State() == dispatch.Terminated {
			a.Quit()
		}
	}

	rows := container.New(layout.NewCustomPaddedVBoxLayout(float32(view.Spacing)))
	for _, r := range view.Rows {
		row := r
		selectRow := func() {
			d.Select(ctx, row.ID)
			quitIfDone()
		}

		left := widget.NewButton(row.Hint, selectRow)
		right := widget.NewButton(row.Hint, selectRow)
		title := widget.NewButton(row.Label(), selectRow)
		title.Alignment = widget.ButtonAlignLeading
		if row.Current {
			left.Importance = widget.HighImportance
			right.Importance = widget.HighImportance
		}

		rows.Add(container.NewBorder(nil, nil, left, right, title))
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		key, ok := dispatch.KeyFromName(string(ev.Name))
		if !ok {
			return
		}
		if d.Dispatch(ctx, key) {
			quitIfDone()
		}
	})

	a.Lifecycle().SetOnExitedForeground(func() {
		f.log.Debug("Switcher lost focus")
		d.FocusLost()
		quitIfDone()
	})

	w.SetContent(container.NewVScroll(rows))
	w.Resize(windowSize(view, len(view.Rows)))
	w.CenterOnScreen()

	f.log.Debug("Showing switcher", "rows", len(view.Rows))
	w.ShowAndRun()
	return nil
}

// windowSize fits the rows on one screen of the primary monitor.
func windowSize(view app.View, rows int) fyne.Size {
	width := float32(view.Geometry.Width) * maxWidthPct
	if width < minWidth {
		width = minWidth
	}

	height := float32(rows*(rowHeight+view.Spacing) + rowHeight)
	if limit := float32(view.Geometry.Height) * maxHeight; limit > 0 && height > limit {
		height = limit
	}
	return fyne.NewSize(width, height)
}
