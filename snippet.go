package cdsco

import (
	"strings"
	"unicode/utf8"
)

// CountOccurrences returns the number of non-overlapping
// case-insensitive occurrences of keyword in text. An empty keyword
// never matches.
func CountOccurrences(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(keyword))
}

// ExtractSnippets returns context windows around the first max
// case-insensitive occurrences of keyword in text, in text order. Each
// snippet holds up to window characters before and after the match,
// clipped at text boundaries and trimmed of surrounding whitespace.
// Snippets preserve the original casing of the text.
func ExtractSnippets(text, keyword string, window, max int) []string {
	if keyword == "" || max <= 0 {
		return nil
	}
	if window < 0 {
		window = 0
	}

	lowerText := strings.ToLower(text)
	lowerKeyword := strings.ToLower(keyword)

	var snippets []string
	for offset := 0; len(snippets) < max; {
		i := strings.Index(lowerText[offset:], lowerKeyword)
		if i == -1 {
			break
		}
		i += offset
		end := i + len(lowerKeyword)

		snippets = append(snippets, clipWindow(text, i, end, window))
		offset = end
	}
	return snippets
}

// clipWindow slices text around [start, end) with up to window runes of
// context on each side, clipped at text boundaries.
func clipWindow(text string, start, end, window int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}

	lo := start
	for n := 0; n < window && lo > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for n := 0; n < window && hi < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}

	return strings.TrimSpace(text[lo:hi])
}
