package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const colGap = "  "

// padCell truncates s to width (with an ellipsis) and pads to exactly width
// display cells. Widths are ANSI-aware so styled content measures correctly.
func padCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) > width {
		if width > 1 {
			s = xansi.Cut(s, 0, width-1) + "…"
		} else {
			s = xansi.Cut(s, 0, width)
		}
	}
	if pad := width - xansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func renderHeaderRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = padCell(c, widths[i])
	}
	return styleMuted().Bold(true).Render(strings.Join(parts, colGap))
}

func renderDataRow(cells []string, widths []int, selected bool) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = padCell(c, widths[i])
	}
	row := strings.Join(parts, colGap)
	if selected {
		return styleSelectedRow().Render(row)
	}
	return row
}

// rowWindow returns the [start,end) slice bounds that keep cursor visible
// within max rows.
func rowWindow(total, cursor, max int) (int, int) {
	if max <= 0 || total <= max {
		return 0, total
	}
	start := cursor - max/2
	if start < 0 {
		start = 0
	}
	if start+max > total {
		start = total - max
	}
	return start, start + max
}
