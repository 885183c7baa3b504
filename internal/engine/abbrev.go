package engine

const ellipsis = "..."

// Abbreviate shortens title to at most maxLen/8*8 characters plus an ellipsis,
// keeping equal parts of its start and end. Titles shorter than maxLen
// characters are returned unchanged.
func Abbreviate(title string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	chars := []rune(title)
	if len(chars) < maxLen {
		return title
	}
	k := (maxLen / 8) * 4
	return string(chars[:k]) + ellipsis + string(chars[len(chars)-k:])
}
