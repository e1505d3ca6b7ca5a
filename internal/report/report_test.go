package report

import (
	"bytes"
	"testing"

	"github.com/verte-zerg/wordict/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Dictionary", "Words"}
	rows := [][]string{
		{"default", "12"},
		{"sample", "1024"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Dictionary  Words" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "default        12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "sample       1024" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthWide(t *testing.T) {
	if got := DisplayWidth("日本"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
	if got := Truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func TestWriteWords(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWords(&buf, []string{"Cat", "dog"}); err != nil {
		t.Fatalf("write words: %v", err)
	}
	want := "\nWords in dictionary:\n[    1]  Cat\n[    2]  dog\nTotal: 2\n\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteSummaries(t *testing.T) {
	var buf bytes.Buffer
	summaries := []model.DictSummary{{Name: "default", Words: 3}, {Name: "sample", Words: 10}}
	if err := WriteSummaries(&buf, summaries, "sample", false); err != nil {
		t.Fatalf("write summaries: %v", err)
	}
	want := "   Dictionary  Words\n   default         3\n*  sample         10\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestShouldUseColorNonFile(t *testing.T) {
	if ShouldUseColor(&bytes.Buffer{}) {
		t.Fatalf("buffers are not terminals")
	}
}
