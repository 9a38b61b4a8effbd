package stats

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays rows out in space separated columns sized in terminal
// cells. Columns listed in rightAlign are padded on the left.
func formatTable(headers []string, rows [][]string, rightAlign ...int) []string {
	all := rows
	if len(headers) > 0 {
		all = append([][]string{headers}, rows...)
	}
	widths := columnWidths(all)
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, len(all))
	for i, row := range all {
		cells := make([]string, len(widths))
		for col, width := range widths {
			var cell string
			if col < len(row) {
				cell = row[col]
			}
			if slices.Contains(rightAlign, col) {
				cells[col] = runewidth.FillLeft(cell, width)
			} else {
				cells[col] = runewidth.FillRight(cell, width)
			}
		}
		lines[i] = strings.Join(cells, " ")
	}
	return lines
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for col, cell := range row {
			if col == len(widths) {
				widths = append(widths, 0)
			}
			widths[col] = max(widths[col], runewidth.StringWidth(cell))
		}
	}
	return widths
}
