package display

import (
	"fmt"
	"strings"
)

// Col describes one table column.
type Col struct {
	Title string
	Width int
	Right bool // right-align, for numeric columns
}

// PrintTable renders a padded column table into the scrollback: styled
// header row, divider, one line per row. Cells longer than the column
// width are truncated with an ellipsis.
func (u *UI) PrintTable(cols []Col, rows [][]string) {
	var header strings.Builder
	total := 0
	for i, c := range cols {
		if i > 0 {
			header.WriteString("  ")
			total += 2
		}
		header.WriteString(pad(c.Title, c.Width, false))
		total += c.Width
	}
	u.Println(headerStyle.Render("  " + header.String()))
	u.PrintRule(total)

	for _, row := range rows {
		var line strings.Builder
		for i, c := range cols {
			if i > 0 {
				line.WriteString("  ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line.WriteString(pad(cell, c.Width, c.Right))
		}
		u.Println(primaryStyle.Render("  " + line.String()))
	}
}

func pad(s string, width int, right bool) string {
	if len([]rune(s)) > width {
		runes := []rune(s)
		if width > 1 {
			return string(runes[:width-1]) + "…"
		}
		return string(runes[:width])
	}
	if right {
		return fmt.Sprintf("%*s", width, s)
	}
	return fmt.Sprintf("%-*s", width, s)
}
