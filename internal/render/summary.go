package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultTitleWidth bounds the issue title in the summary line, in terminal cells.
const DefaultTitleWidth = 48

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CC0000")).Bold(true)
	issueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	dim        = lipgloss.NewStyle().Faint(true)
)

// Summary describes one dispatch outcome for the terminal.
type Summary struct {
	IssueID string
	Title   string
	TaskID  string
	TaskURL string
	Err     error
	DryRun  bool
}

// Line renders s as a single styled line (no trailing newline).
func (s Summary) Line(titleWidth int) string {
	if titleWidth <= 0 {
		titleWidth = DefaultTitleWidth
	}
	parts := make([]string, 0, 4)
	switch {
	case s.Err != nil:
		parts = append(parts, errStyle.Render("✗ dispatch failed"))
	case s.DryRun:
		parts = append(parts, dim.Render("• dry run"))
	default:
		parts = append(parts, okStyle.Render("✓ dispatched"))
	}
	if id := strings.TrimSpace(s.IssueID); id != "" {
		parts = append(parts, issueStyle.Render(id))
	}
	if title := Truncate(s.Title, titleWidth); title != "" {
		parts = append(parts, title)
	}
	switch {
	case s.Err != nil:
		parts = append(parts, dim.Render(s.Err.Error()))
	case s.TaskURL != "":
		parts = append(parts, dim.Render("→ "+s.TaskURL))
	case s.TaskID != "":
		parts = append(parts, dim.Render("→ task "+s.TaskID))
	}
	return strings.Join(parts, " ")
}

// Truncate flattens text to one line and cuts it to width terminal cells,
// counting wide (CJK) runes as two.
func Truncate(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
