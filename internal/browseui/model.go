// Package browseui provides the Bubble Tea dictionary browser.
package browseui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordict/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Model implements the Bubble Tea word browser.
type Model struct {
	dictName string
	words    []string
	matches  []int
	query    string

	viewport viewport.Model
	input    textinput.Model

	filterMode bool
	prevQuery  string

	width  int
	height int
}

// NewModel constructs a browser over words of the named dictionary.
func NewModel(dictName string, words []string) *Model {
	m := &Model{
		dictName: dictName,
		words:    words,
		viewport: viewport.New(0, 0),
		input:    newFilterInput(),
	}
	m.applyQuery("")
	return m
}

func newFilterInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.CharLimit = 0
	input.Placeholder = "substring"
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContent()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			return m.startFilter()
		case "esc":
			m.applyQuery("")
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewport.View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.prevQuery = m.query
	m.input.SetValue(m.query)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.input.Blur()
		m.applyQuery(m.prevQuery)
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.query {
		m.applyQuery(value)
	}
	return m, cmd
}

func (m *Model) applyQuery(query string) {
	m.query = query
	m.matches = filterWords(m.words, query)
	m.renderContent()
	m.viewport.GotoTop()
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
	promptWidth := lipgloss.Width(m.input.Prompt)
	m.input.Width = maxInt(10, m.width-promptWidth-2)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	titleHeight := lipgloss.Height(titleStyle.Render("X"))
	if titleHeight < 1 {
		titleHeight = 1
	}
	headerHeight = titleHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(m.dictName)
	summary := fmt.Sprintf("Words: %d  Shown: %d", len(m.words), len(m.matches))
	if m.query != "" {
		summary += fmt.Sprintf("  Filter: %q", m.query)
	}
	return title + "\n" + headerStyle.Render(report.Truncate(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.input.View()
	}
	return headerStyle.Render("Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Filter: /  Clear filter: esc  Quit: q")
}

func (m *Model) renderContent() {
	m.viewport.SetContent(renderWords(m.words, m.matches, m.query, m.width))
}

func renderWords(words []string, matches []int, query string, width int) string {
	if len(words) == 0 {
		return emptyStyle.Render("Dictionary is empty.")
	}
	if len(matches) == 0 {
		return emptyStyle.Render("No matching words.")
	}
	lines := make([]string, 0, len(matches))
	for _, idx := range matches {
		prefixWidth := report.DisplayWidth(report.WordLine(idx+1, ""))
		word := report.Truncate(words[idx], width-prefixWidth)
		if query != "" {
			word = highlight(word, query)
		}
		lines = append(lines, report.WordLine(idx+1, word))
	}
	return strings.Join(lines, "\n")
}

// filterWords returns the indexes of words containing query, in order.
func filterWords(words []string, query string) []int {
	out := make([]int, 0, len(words))
	for i, word := range words {
		if query == "" || strings.Contains(word, query) {
			out = append(out, i)
		}
	}
	return out
}

func highlight(word, query string) string {
	i := strings.Index(word, query)
	if i < 0 {
		return word
	}
	return word[:i] + matchStyle.Render(query) + word[i+len(query):]
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
