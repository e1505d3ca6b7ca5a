package browseui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFilterWords(t *testing.T) {
	words := []string{"Cat", "dog", "cat", "42", "concat"}
	if got := filterWords(words, ""); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("empty query should keep all, got %v", got)
	}
	if got := filterWords(words, "cat"); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("expected case-sensitive matches, got %v", got)
	}
	if got := filterWords(words, "zebra"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestRenderWordsKeepsOriginalNumbers(t *testing.T) {
	words := []string{"alpha", "beta", "gamma"}
	out := renderWords(words, []int{2}, "", 80)
	if !strings.Contains(out, "[    3]  gamma") {
		t.Fatalf("expected original numbering, got %q", out)
	}
	if out := renderWords(nil, nil, "", 80); !strings.Contains(out, "Dictionary is empty.") {
		t.Fatalf("unexpected empty output %q", out)
	}
	if out := renderWords(words, nil, "x", 80); !strings.Contains(out, "No matching words.") {
		t.Fatalf("unexpected no-match output %q", out)
	}
}

func TestFilterModeUpdatesMatches(t *testing.T) {
	m := NewModel("sample", []string{"apple", "banana", "grape"})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filterMode {
		t.Fatalf("expected filter mode after '/'")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ap")})
	if m.query != "ap" {
		t.Fatalf("expected query ap, got %q", m.query)
	}
	if !reflect.DeepEqual(m.matches, []int{0, 2}) {
		t.Fatalf("unexpected matches %v", m.matches)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode || m.query != "" || len(m.matches) != 3 {
		t.Fatalf("esc should restore previous query, got %q %v", m.query, m.matches)
	}

	view := m.View()
	if !strings.Contains(view, "Words: 3") || !strings.Contains(view, "sample") {
		t.Fatalf("header missing from view: %s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel("sample", nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Fatalf("expected quit command for q")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("expected quit command for ctrl+c")
	}
}
