package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hmajid/pkgtop/pkg/stats"
)

// columnGap separates the name and count columns.
const columnGap = "  "

// noData is rendered when the ranked rows are empty.
const noData = "(no data)"

// renderTable formats ranked rows as a two-column table: package names
// left-aligned, file counts right-aligned, column widths sized to content.
// Pure formatting; the result carries a trailing newline.
func renderTable(rows []stats.Row) string {
	if len(rows) == 0 {
		return noData + "\n"
	}

	nameHeader, countHeader := "Package", "File Count"
	nameWidth, countWidth := lipgloss.Width(nameHeader), lipgloss.Width(countHeader)
	for _, row := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(row.Name))
		countWidth = max(countWidth, len(strconv.Itoa(row.Count)))
	}

	nameCol := lipgloss.NewStyle().Width(nameWidth)
	countCol := lipgloss.NewStyle().Width(countWidth).Align(lipgloss.Right)

	var b strings.Builder
	b.WriteString(styleHeader.Render(nameCol.Render(nameHeader)))
	b.WriteString(columnGap)
	b.WriteString(styleHeader.Render(countCol.Render(countHeader)))
	b.WriteByte('\n')
	b.WriteString(styleDim.Render(strings.Repeat("-", nameWidth) + columnGap + strings.Repeat("-", countWidth)))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(styleValue.Render(nameCol.Render(row.Name)))
		b.WriteString(columnGap)
		b.WriteString(countCol.Render(strconv.Itoa(row.Count)))
		b.WriteByte('\n')
	}
	return b.String()
}
