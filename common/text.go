package common

import (
	"strings"
	"unicode/utf8"
)

// WrapText breaks s into lines no wider than maxWidth. Explicit newlines are kept and
// words wider than a whole line are split between runes.
//
// Parameters:
//   - s: the text to wrap
//   - maxWidth: the line width, in whatever unit measure reports
//   - measure: returns the rendered width of a string
//
// Returns:
//   - []string: the wrapped lines, nil when maxWidth is not positive
func WrapText(s string, maxWidth int, measure func(string) int) []string {
	if maxWidth <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for word != "" && measure(word) > maxWidth {
				cut := fitRunes(word, maxWidth, measure)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			line = word
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// fitRunes returns the longest rune-aligned prefix length of word that fits, never less than one rune.
func fitRunes(word string, maxWidth int, measure func(string) int) int {
	cut := 0
	for i, r := range word {
		end := i + utf8.RuneLen(r)
		if cut > 0 && measure(word[:end]) > maxWidth {
			break
		}
		cut = end
	}
	return cut
}
