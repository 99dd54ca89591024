package ui

import (
	"fmt"
	"strconv"
	"strings"

	"filemcp/internal/search"

	"github.com/charmbracelet/lipgloss"
)

// Lip Gloss styles for the search command's terminal output.
// All colors are specified using hex codes.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2"))

	LineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff5f"))

	SummaryStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)
)

// RenderMatches formats a search result for a terminal, one line per match
// prefixed by its line number, with keyword occurrences highlighted.
func RenderMatches(path, keyword string, result *search.Result) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(path))
	b.WriteString("\n")

	width := 1
	if n := len(result.Matches); n > 0 {
		width = len(strconv.Itoa(result.Matches[n-1].Line))
	}

	for _, m := range result.Matches {
		b.WriteString(LineNumberStyle.Render(fmt.Sprintf("%*d", width, m.Line)))
		b.WriteString(": ")
		// \r is kept in the result; drop it here so the terminal line isn't rewound
		b.WriteString(highlight(strings.TrimSuffix(m.Content, "\r"), keyword))
		b.WriteString("\n")
	}

	b.WriteString(SummaryStyle.Render(summary(result.TotalMatches)))
	b.WriteString("\n")
	return b.String()
}

// RenderError formats a failed command for stderr
func RenderError(err error) string {
	return ErrorStyle.Render(err.Error()) + "\n"
}

func highlight(line, keyword string) string {
	if keyword == "" {
		return line
	}
	parts := strings.Split(line, keyword)
	return strings.Join(parts, HighlightStyle.Render(keyword))
}

func summary(total int) string {
	if total == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", total)
}
