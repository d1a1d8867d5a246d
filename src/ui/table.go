package ui

import (
	"fmt"
	"strings"

	"corona-observer/src/models"

	"github.com/charmbracelet/lipgloss"
)

const tableTitle = "Corona virus - Sort by: (c) confirmed, (d) deaths, (r) recovered"

var tableColumns = []string{"Country", "Confirmed", "Deaths", "Deaths (%)", "Recovered", "Recovered (%)"}

const (
	minCountryWidth = 7
	maxCountryWidth = 32
)

// columnWidths sizes the country column to the longest name and every other
// column to its header or widest cell.
func columnWidths(rows []models.MCountryRow) []int {
	widths := make([]int, len(tableColumns))
	for i, h := range tableColumns {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r.Cells() {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	if widths[0] < minCountryWidth {
		widths[0] = minCountryWidth
	}
	if widths[0] > maxCountryWidth {
		widths[0] = maxCountryWidth
	}
	return widths
}

func formatLine(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == 0 {
			if r := []rune(cell); len(r) > widths[0] {
				cell = string(r[:widths[0]-1]) + "~"
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		} else {
			parts[i] = fmt.Sprintf("%*s", widths[i], cell)
		}
	}
	return strings.Join(parts, "  ")
}

// tableVisibleRows is how many data rows fit in a table box of height h.
func tableVisibleRows(h int) int {
	// border (2) + title + header
	if v := h - 4; v > 0 {
		return v
	}
	return 1
}

// renderTable draws the sorted rows inside a box of the given size, showing
// rows[offset:offset+visible] with the selected row highlighted.
func renderTable(rows []models.MCountryRow, metric models.Metric, selected, offset, width, height int) string {
	widths := columnWidths(rows)
	visible := tableVisibleRows(height)

	lines := make([]string, 0, visible+2)
	lines = append(lines, titleStyle.Render(tableTitle)+mutedStyle.Render(" [sorted by "+metric.String()+"]"))
	lines = append(lines, headerStyle.Render(formatLine(tableColumns, widths)))

	end := offset + visible
	if end > len(rows) {
		end = len(rows)
	}
	for i := offset; i < end; i++ {
		line := formatLine(rows[i].Cells(), widths)
		if i == selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return boxStyle.
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
