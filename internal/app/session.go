package app

import (
	"context"
	"fmt"
	"strings"

	"winterreise/internal/engine"
	"winterreise/internal/wm"
	"winterreise/pkg/config"
	"winterreise/pkg/core"
)

// Row is one window as presented to the user.
type Row struct {
	Hint       string `yaml:"hint,omitempty" json:"hint,omitempty"`
	Window     string `yaml:"window" json:"window"`
	Desktop    uint32 `yaml:"desktop" json:"desktop"`
	Title      string `yaml:"title" json:"title"`
	Class      string `yaml:"class" json:"class"`
	StyleClass string `yaml:"style_class" json:"style_class"`
	Current    bool   `yaml:"current,omitempty" json:"current,omitempty"`

	ID uint64 `yaml:"-" json:"-"`
}

// Label is the text shown on the row's main button.
func (r Row) Label() string {
	return fmt.Sprintf("%d: %s", r.Desktop, r.Title)
}

// Session holds the data of one switcher invocation. It is built once by
// Prepare and read-only afterwards.
type Session struct {
	cfg  *config.Config
	comp wm.Compositor
	log  core.Logger

	snapshot    wm.Snapshot
	currentOnly bool
	windows     []wm.Window
	hints       engine.HintMap
	rows        []Row
}

func NewSession(cfg *config.Config, comp wm.Compositor, log core.Logger) *Session {
	return &Session{cfg: cfg, comp: comp, log: log}
}

// Prepare queries the compositor, filters the windows and assigns hints.
func (s *Session) Prepare(ctx context.Context, currentOnly bool) error {
	snapshot, err := s.comp.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", s.comp.Name(), err)
	}
	s.snapshot = snapshot
	s.currentOnly = currentOnly

	var scope *uint32
	if currentOnly {
		scope = &snapshot.Desktop
		s.log.Info("Only showing windows on desktop", "desktop", snapshot.Desktop)
	} else {
		s.log.Info("Showing windows on all desktops")
	}

	s.windows = engine.Filter(snapshot.Windows, scope, s.cfg.GetBlacklist())
	if len(s.windows) > engine.MaxHints {
		s.log.Warn("More windows than hint letters, the rest can only be clicked",
			"windows", len(s.windows),
			"hints", engine.MaxHints)
	}
	s.hints = engine.AssignHints(s.windows)
	s.rows = s.buildRows()

	s.log.Debug("Session prepared",
		"fetched", len(snapshot.Windows),
		"shown", len(s.windows),
		"hinted", s.hints.Len())
	return nil
}

func (s *Session) buildRows() []Row {
	rows := make([]Row, 0, len(s.windows))
	for i, w := range s.windows {
		row := Row{
			Window:     fmt.Sprintf("0x%x", w.ID),
			Desktop:    w.Desktop,
			Title:      engine.Abbreviate(w.Title, s.cfg.GetMaxWidth()),
			Class:      w.Class,
			StyleClass: StyleClass(w.Class),
			Current:    w.ID == s.snapshot.Active,
			ID:         w.ID,
		}
		if _, ok := s.hints.Lookup(i); ok {
			row.Hint = string(engine.HintLetter(i))
		}
		rows = append(rows, row)
	}
	return rows
}

// StyleClass derives the per-class style name of a window.
func StyleClass(class string) string {
	return "wbtn_" + strings.ReplaceAll(class, ".", "_")
}

func (s *Session) Snapshot() wm.Snapshot {
	return s.snapshot
}

func (s *Session) Windows() []wm.Window {
	return s.windows
}

func (s *Session) Hints() engine.HintMap {
	return s.hints
}

func (s *Session) Rows() []Row {
	return s.rows
}

func (s *Session) CurrentOnly() bool {
	return s.currentOnly
}
