package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// SkipRow is one dropped input line shown by --explain.
type SkipRow struct {
	Line   int
	Reason string
	Text   string
}

// RenderSkips renders dropped lines as a borderless three-column table:
// line number, reason, original text. The text column is truncated to fit
// the display width.
func RenderSkips(rows []SkipRow, display *DisplayContext) string {
	if len(rows) == 0 {
		return ""
	}
	if display == nil {
		display = NewDisplayContextWithWidth(DefaultTermWidth)
	}

	numWidth, reasonWidth := 2, 0
	for _, r := range rows {
		if n := len(strconv.Itoa(r.Line)); n > numWidth {
			numWidth = n
		}
		if n := lipgloss.Width(r.Reason); n > reasonWidth {
			reasonWidth = n
		}
	}
	const gap = 2
	textWidth := display.AvailableWidth(numWidth + reasonWidth + 2*gap)

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{strconv.Itoa(r.Line), r.Reason, Truncate(r.Text, textWidth)}
	}

	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch col {
			case 0:
				return Muted.Width(numWidth + gap).Align(lipgloss.Right).PaddingRight(gap)
			case 1:
				return Muted.Width(reasonWidth + gap).PaddingRight(gap)
			default:
				return lipgloss.NewStyle()
			}
		}).
		Rows(data...)

	return tbl.Render()
}
