package engine

import (
	"winterreise/internal/wm"
	"winterreise/pkg/config"
)

// Filter keeps the windows on desktop *scope (all desktops when scope is nil)
// whose class is not blacklisted. Survivors keep their input order.
func Filter(windows []wm.Window, scope *uint32, blacklist config.Blacklist) []wm.Window {
	result := make([]wm.Window, 0, len(windows))
	for _, w := range windows {
		if scope != nil && w.Desktop != *scope {
			continue
		}
		if blacklist.Contains(w.Class) {
			continue
		}
		result = append(result, w)
	}
	return result
}
