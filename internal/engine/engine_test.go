package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winterreise/internal/wm"
	"winterreise/pkg/config"
)

var sample = []wm.Window{
	{ID: 1, Desktop: 0, Title: "Term", Class: "Alacritty"},
	{ID: 2, Desktop: 1, Title: "Web", Class: "Firefox"},
	{ID: 3, Desktop: 0, Title: "Mail", Class: "thunderbird"},
	{ID: 4, Desktop: 1, Title: "Docs", Class: "Firefox"},
}

func desktop(d uint32) *uint32 { return &d }

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		scope     *uint32
		blacklist config.Blacklist
		want      []uint64
	}{
		{"all desktops", nil, nil, []uint64{1, 2, 3, 4}},
		{"desktop 0", desktop(0), nil, []uint64{1, 3}},
		{"desktop 1", desktop(1), nil, []uint64{2, 4}},
		{"empty desktop", desktop(7), nil, nil},
		{"blacklist", nil, config.Blacklist{{Class: "Firefox"}}, []uint64{1, 3}},
		{"blacklist is case sensitive", nil, config.Blacklist{{Class: "firefox"}}, []uint64{1, 2, 3, 4}},
		{"blacklist is exact", nil, config.Blacklist{{Class: "Fire"}}, []uint64{1, 2, 3, 4}},
		{"both", desktop(1), config.Blacklist{{Class: "Firefox"}}, nil},
		{"both partial", desktop(0), config.Blacklist{{Class: "thunderbird"}}, []uint64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sample, tt.scope, tt.blacklist)
			var ids []uint64
			for _, w := range got {
				ids = append(ids, w.ID)
				if tt.scope != nil {
					assert.Equal(t, *tt.scope, w.Desktop)
				}
				assert.False(t, tt.blacklist.Contains(w.Class))
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := append([]wm.Window(nil), sample...)
	Filter(in, desktop(0), config.Blacklist{{Class: "Alacritty"}})
	assert.Equal(t, sample, in)
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		title  string
		maxLen int
		want   string
	}{
		{"HelloWorldExtra", 8, "Hell...xtra"},
		{"short", 20, "short"},
		{"exactly8", 8, "exac...tly8"},
		{"seven77", 8, "seven77"},
		{"anything", 7, "..."},
		{"", 0, "..."},
		{"", 1, ""},
		{"abcdefghijklmnopqrstuvwxyz", 16, "abcdefgh...stuvwxyz"},
		{"ÄÖÜäöüßÄÖÜäöüß", 8, "ÄÖÜä...äöüß"},
		{"日本語のタイトルです", 8, "日本語の...トルです"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.title, tt.maxLen), func(t *testing.T) {
			assert.Equal(t, tt.want, Abbreviate(tt.title, tt.maxLen))
		})
	}
}

func TestAbbreviate_Shape(t *testing.T) {
	title := strings.Repeat("x", 10) + "MIDDLE" + strings.Repeat("y", 10)
	for maxLen := 0; maxLen <= len(title); maxLen++ {
		got := Abbreviate(title, maxLen)
		k := maxLen / 8 * 4
		assert.Equal(t, title[:k]+"..."+title[len(title)-k:], got, "maxLen %d", maxLen)
	}
	for maxLen := len(title) + 1; maxLen < len(title)+10; maxLen++ {
		assert.Equal(t, title, Abbreviate(title, maxLen))
	}
}

func TestAssignHints(t *testing.T) {
	m := AssignHints(sample)
	require.Equal(t, len(sample), m.Len())
	for i, w := range sample {
		id, ok := m.Lookup(i)
		require.True(t, ok)
		assert.Equal(t, w.ID, id)
	}
	_, ok := m.Lookup(len(sample))
	assert.False(t, ok)
	_, ok = m.Lookup(-1)
	assert.False(t, ok)

	assert.Equal(t, m, AssignHints(sample), "assignment must be deterministic")
}

func TestAssignHints_Empty(t *testing.T) {
	m := AssignHints(nil)
	assert.Zero(t, m.Len())
	_, ok := m.Lookup(0)
	assert.False(t, ok)
}

func TestAssignHints_CapsAt26(t *testing.T) {
	windows := make([]wm.Window, 30)
	for i := range windows {
		windows[i] = wm.Window{ID: uint64(100 + i)}
	}

	m := AssignHints(windows)
	require.Equal(t, MaxHints, m.Len())
	for code := 0; code < MaxHints; code++ {
		id, ok := m.Lookup(code)
		require.True(t, ok)
		assert.Equal(t, uint64(100+code), id)
	}
	_, ok := m.Lookup(26)
	assert.False(t, ok)
}

func TestHintLetterAndCode(t *testing.T) {
	for code := 0; code < MaxHints; code++ {
		letter := HintLetter(code)
		got, ok := HintCode(letter)
		require.True(t, ok)
		assert.Equal(t, code, got)
	}
	assert.Equal(t, 'a', HintLetter(0))
	assert.Equal(t, 'z', HintLetter(25))

	code, ok := HintCode('C')
	assert.True(t, ok)
	assert.Equal(t, 2, code)

	for _, r := range []rune{'1', ' ', '[', '`', 'é'} {
		_, ok := HintCode(r)
		assert.False(t, ok, "rune %q", r)
	}
}

func TestScenario_FilterThenHints(t *testing.T) {
	windows := []wm.Window{
		{ID: 1, Desktop: 0, Title: "Term", Class: "Alacritty"},
		{ID: 2, Desktop: 1, Title: "Web", Class: "Firefox"},
	}

	scoped := AssignHints(Filter(windows, desktop(0), nil))
	require.Equal(t, 1, scoped.Len())
	id, _ := scoped.Lookup(0)
	assert.Equal(t, uint64(1), id)

	blacklisted := Filter(windows, nil, config.Blacklist{{Class: "Firefox"}})
	assert.Equal(t, windows[:1], blacklisted)
}
