package main

import (
	"strings"
	"unicode/utf8"
)

// maxSnippetRunes bounds response excerpts quoted in failure reasons.
const maxSnippetRunes = 256

// clampRunes cuts text to at most limit runes and marks the cut with an ellipsis.
// A limit of zero or less leaves text as is.
func clampRunes(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "…"
}

// shorten trims surrounding whitespace before clamping, for matrix cells and failure lines.
func shorten(text string, limit int) string {
	return clampRunes(strings.TrimSpace(text), limit)
}

// snippet renders a response body for a failure reason.
func snippet(body []byte) string {
	return shorten(string(body), maxSnippetRunes)
}
