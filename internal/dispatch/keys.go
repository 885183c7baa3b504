package dispatch

import (
	"unicode"
	"unicode/utf8"
)

// KeyFromName maps a toolkit key name ("Escape", "Space", "A", "1", ...) to a Key.
// Multi-character names other than Escape and Space have no Key.
func KeyFromName(name string) (Key, bool) {
	switch name {
	case "Escape":
		return KeyEscape, true
	case "Space", " ":
		return KeySpace, true
	}
	if utf8.RuneCountInString(name) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return Key(unicode.ToLower(r)), true
}
