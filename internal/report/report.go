// Package report renders dictionary listings for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/wordict/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

// WordLine formats the n-th (1-based) word of a listing.
func WordLine(n int, word string) string {
	return fmt.Sprintf("[%5d]  %s", n, word)
}

// WriteWords prints words numbered in order, followed by the total.
func WriteWords(w io.Writer, words []string) error {
	if _, err := fmt.Fprintln(w, "\nWords in dictionary:"); err != nil {
		return err
	}
	for i, word := range words {
		if _, err := fmt.Fprintln(w, WordLine(i+1, word)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d\n\n", len(words))
	return err
}

// WriteSummaries prints one row per dictionary. The active one is marked with '*'.
func WriteSummaries(w io.Writer, summaries []model.DictSummary, active string, color bool) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		mark := ""
		if s.Name == active {
			mark = "*"
		}
		rows = append(rows, []string{mark, s.Name, strconv.Itoa(s.Words)})
	}
	lines := formatTable([]string{"", "Dictionary", "Words"}, rows, map[int]bool{2: true})
	for i, line := range lines {
		if i == 0 && color {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ShouldUseColor reports whether w is a terminal that accepts colour.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
