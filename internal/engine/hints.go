package engine

import "winterreise/internal/wm"

// MaxHints is the number of single-letter hints, 'a' through 'z'.
const MaxHints = 26

// HintMap maps hint codes 0..n-1 to window ids.
type HintMap struct {
	ids [MaxHints]uint64
	n   int
}

// AssignHints gives the i-th window hint code i. Windows past MaxHints get no code.
func AssignHints(windows []wm.Window) HintMap {
	var m HintMap
	for _, w := range windows {
		if m.n == MaxHints {
			break
		}
		m.ids[m.n] = w.ID
		m.n++
	}
	return m
}

// Lookup returns the window id for code.
func (m HintMap) Lookup(code int) (uint64, bool) {
	if code < 0 || code >= m.n {
		return 0, false
	}
	return m.ids[code], true
}

// Len returns the number of assigned codes.
func (m HintMap) Len() int {
	return m.n
}

// HintLetter renders a code as its letter.
func HintLetter(code int) rune {
	return rune('a' + code)
}

// HintCode converts a letter, in either case, back to its code.
func HintCode(r rune) (int, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	default:
		return 0, false
	}
}
