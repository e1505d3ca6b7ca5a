// Package wordlist extracts words from text and reads text files.
package wordlist

import (
	"strings"
	"unicode"
)

// IsWordRune reports whether r may appear inside a word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ExtractWords returns the maximal runs of letters and digits in line, left to right.
func ExtractWords(line string) []string {
	var words []string
	var buf strings.Builder
	inside := false
	for _, r := range line {
		if IsWordRune(r) {
			inside = true
			buf.WriteRune(r)
			continue
		}
		if inside {
			inside = false
			if buf.Len() > 0 {
				words = append(words, buf.String())
			}
			buf.Reset()
		}
	}
	if inside && buf.Len() > 0 {
		words = append(words, buf.String())
	}
	return words
}
