package wordlist

import (
	"reflect"
	"testing"
)

func TestExtractWords(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{name: "punctuation", line: "hello, world!123", want: []string{"hello", "world", "123"}},
		{name: "underscores", line: "___a__b___", want: []string{"a", "b"}},
		{name: "empty", line: "", want: nil},
		{name: "blank", line: "   \t ", want: nil},
		{name: "trailing word", line: "word", want: []string{"word"}},
		{name: "leading word", line: "word.", want: []string{"word"}},
		{name: "single chars", line: "a b-c", want: []string{"a", "b", "c"}},
		{name: "consecutive delimiters", line: "x,,,;;;y", want: []string{"x", "y"}},
		{name: "mixed letters digits", line: "go1 1go", want: []string{"go1", "1go"}},
		{name: "case kept", line: "Cat dog cat! 42 dog", want: []string{"Cat", "dog", "cat", "42", "dog"}},
		{name: "unicode letters", line: "naïve café—résumé", want: []string{"naïve", "café", "résumé"}},
		{name: "non-latin", line: "привет мир", want: []string{"привет", "мир"}},
		{name: "arabic-indic digits", line: "room ١٢٣", want: []string{"room", "١٢٣"}},
		{name: "apostrophe splits", line: "don't", want: []string{"don", "t"}},
		{name: "invalid utf8 is delimiter", line: "ab\xffcd", want: []string{"ab", "cd"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractWords(tc.line)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractWords(%q) = %q, want %q", tc.line, got, tc.want)
			}
		})
	}
}

func TestExtractWordsNeverEmitsDelimiters(t *testing.T) {
	line := "  a1!!b2??  c3\t\td4__e5  "
	for _, word := range ExtractWords(line) {
		if word == "" {
			t.Fatalf("unexpected empty token")
		}
		for _, r := range word {
			if !IsWordRune(r) {
				t.Fatalf("token %q contains delimiter %q", word, r)
			}
		}
	}
}

func TestIsWordRune(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '9', 'é', 'ж', '٣'} {
		if !IsWordRune(r) {
			t.Fatalf("expected %q to be a word rune", r)
		}
	}
	for _, r := range []rune{' ', '_', '-', '\'', '!', '\t', '€'} {
		if IsWordRune(r) {
			t.Fatalf("expected %q to be a delimiter", r)
		}
	}
}
