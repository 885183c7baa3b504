package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"winterreise/internal/dispatch"
	"winterreise/internal/prevwin"
	"winterreise/internal/wm"
	"winterreise/pkg/config"
	"winterreise/pkg/logger"
)

// keyPresenter presses keys in order until the dispatcher terminates.
type keyPresenter struct {
	keys      []dispatch.Key
	focusLost bool
	seen      View
}

func (p *keyPresenter) Present(ctx context.Context, view View) error {
	p.seen = view
	for _, k := range p.keys {
		view.Dispatcher.Dispatch(ctx, k)
		if view.Dispatcher.State() == dispatch.Terminated {
			return nil
		}
	}
	if p.focusLost {
		view.Dispatcher.FocusLost()
	}
	return nil
}

func testConfig(t *testing.T, maxWidth int, blacklist ...string) (*config.Config, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "winterreise")

	items := ""
	for _, class := range blacklist {
		items += fmt.Sprintf("<item><class>%s</class></item>", class)
	}
	doc := fmt.Sprintf(`<configuration>
  <tmpfile><custom>%s</custom></tmpfile>
  <spaceBetweenButtons>3</spaceBetweenButtons>
  <maxwidth>%d</maxwidth>
  <blacklist>%s</blacklist>
</configuration>`, path, maxWidth, items)

	cfg, err := config.Parse([]byte(doc), logger.Nop())
	require.NoError(t, err)
	return cfg, path
}

var scenarioWindows = []wm.Window{
	{ID: 1, Desktop: 0, Title: "Term", Class: "Alacritty"},
	{ID: 2, Desktop: 1, Title: "Web", Class: "Firefox"},
}

func TestRun_ScenarioA_SelectOnCurrentDesktop(t *testing.T) {
	cfg, _ := testConfig(t, 20)
	fake := wm.NewFake(wm.Snapshot{
		Windows:  scenarioWindows,
		Geometry: wm.Geometry{Width: 1920, Height: 1080},
		Desktop:  0,
		Active:   2,
	})
	presenter := &keyPresenter{keys: []dispatch.Key{'a'}}

	outcome, err := NewWinterreise(cfg, fake, presenter, nil, logger.Nop()).Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, dispatch.Outcome{Reason: dispatch.Selected, Window: 1}, outcome)
	assert.Equal(t, []uint64{1}, fake.Focused())

	require.Len(t, presenter.seen.Rows, 1)
	assert.Equal(t, "a", presenter.seen.Rows[0].Hint)
	assert.Equal(t, "0: Term", presenter.seen.Rows[0].Label())
	assert.Equal(t, wm.Geometry{Width: 1920, Height: 1080}, presenter.seen.Geometry)
	assert.Equal(t, 3, presenter.seen.Spacing)
}

func TestRun_ScenarioB_BlacklistAcrossDesktops(t *testing.T) {
	cfg, _ := testConfig(t, 20, "Firefox")
	fake := wm.NewFake(wm.Snapshot{Windows: scenarioWindows})

	session := NewSession(cfg, fake, logger.Nop())
	require.NoError(t, session.Prepare(context.Background(), false))
	assert.Equal(t, scenarioWindows[:1], session.Windows())
	assert.Equal(t, 1, session.Hints().Len())
}

func TestRun_ScenarioC_EscapePersistsActiveWindow(t *testing.T) {
	cfg, path := testConfig(t, 20)
	fake := wm.NewFake(wm.Snapshot{Windows: scenarioWindows, Active: 42})

	outcome, err := NewWinterreise(cfg, fake, &keyPresenter{keys: []dispatch.Key{dispatch.KeyEscape}}, nil, logger.Nop()).
		Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, dispatch.Cancelled, outcome.Reason)

	got, ok := prevwin.ReadFile(path, logger.Nop())
	require.True(t, ok)
	assert.Equal(t, uint64(42), got)
}

func TestRun_UnhandledKeysThenFocusLoss(t *testing.T) {
	cfg, path := testConfig(t, 20)
	fake := wm.NewFake(wm.Snapshot{Windows: scenarioWindows, Active: 42})
	presenter := &keyPresenter{keys: []dispatch.Key{'x', '0'}, focusLost: true}

	outcome, err := NewWinterreise(cfg, fake, presenter, nil, logger.Nop()).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, dispatch.FocusLost, outcome.Reason)
	assert.Empty(t, fake.Focused())

	_, ok := prevwin.ReadFile(path, logger.Nop())
	assert.False(t, ok)
}

func TestRun_MandatoryQueryFailureShowsNothing(t *testing.T) {
	cfg, _ := testConfig(t, 20)
	fake := wm.NewFake(wm.Snapshot{})
	fake.FetchErr = fmt.Errorf("%w: clients: exit status 1", wm.ErrMandatoryQuery)
	presenter := &keyPresenter{}

	_, err := NewWinterreise(cfg, fake, presenter, nil, logger.Nop()).Run(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wm.ErrMandatoryQuery))
	assert.Nil(t, presenter.seen.Dispatcher)
}

func TestRun_MissingRuntimeDirIsFatal(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	cfg, err := config.Parse([]byte(`<configuration><tmpfile><in_xdg_runtime/></tmpfile><maxwidth>10</maxwidth></configuration>`), logger.Nop())
	require.NoError(t, err)

	_, err = NewWinterreise(cfg, wm.NewFake(wm.Snapshot{}), &keyPresenter{}, nil, logger.Nop()).Run(context.Background(), false)
	assert.ErrorIs(t, err, config.ErrNoRuntimeDir)
}

func TestSession_Rows(t *testing.T) {
	cfg, _ := testConfig(t, 8)
	windows := make([]wm.Window, 28)
	for i := range windows {
		windows[i] = wm.Window{ID: uint64(0x100 + i), Desktop: 3, Title: "HelloWorldExtra", Class: "org.gnome.Nautilus"}
	}
	fake := wm.NewFake(wm.Snapshot{Windows: windows, Active: 0x101})

	session := NewSession(cfg, fake, logger.Nop())
	require.NoError(t, session.Prepare(context.Background(), false))

	rows := session.Rows()
	require.Len(t, rows, 28)
	assert.Equal(t, Row{
		Hint:       "a",
		Window:     "0x100",
		Desktop:    3,
		Title:      "Hell...xtra",
		Class:      "org.gnome.Nautilus",
		StyleClass: "wbtn_org_gnome_Nautilus",
		ID:         0x100,
	}, rows[0])
	assert.True(t, rows[1].Current)
	assert.Equal(t, "z", rows[25].Hint)
	assert.Empty(t, rows[26].Hint)
	assert.Empty(t, rows[27].Hint)
}

func TestList_Formats(t *testing.T) {
	cfg, _ := testConfig(t, 20)
	fake := wm.NewFake(wm.Snapshot{Windows: scenarioWindows, Active: 2})
	w := NewWinterreise(cfg, fake, nil, nil, logger.Nop())

	var out bytes.Buffer
	require.NoError(t, w.List(context.Background(), &out, false, FormatYAML))
	var fromYAML []Row
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "b", fromYAML[1].Hint)
	assert.Equal(t, "0x2", fromYAML[1].Window)
	assert.True(t, fromYAML[1].Current)

	out.Reset()
	require.NoError(t, w.List(context.Background(), &out, true, FormatJSON))
	var fromJSON []Row
	require.NoError(t, json.Unmarshal(out.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "Term", fromJSON[0].Title)

	assert.Error(t, w.List(context.Background(), &out, false, "xml"))
}

func TestWriteRows_EmptyList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteRows(&out, nil, FormatJSON))
	assert.Equal(t, "[]\n", out.String())
}
