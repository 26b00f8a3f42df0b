package streak

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Format renders the grid as a table with a "days ago" header:
//
//	      6 5 4 3 2 1 0
//	Mood  #         # #
//
// Rows are sorted by label. It returns false when the grid is empty.
func Format(grid Grid) (string, bool) {
	if len(grid) == 0 {
		return "", false
	}

	labels := make([]string, 0, len(grid))
	width, days := 0, 0
	for label, row := range grid {
		labels = append(labels, label)
		width = max(width, utf8.RuneCountInString(label))
		days = max(days, len(row))
	}
	sort.Strings(labels)
	width += 2

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width))
	for i := days - 1; i >= 0; i-- {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(' ')
	}

	for _, label := range labels {
		b.WriteByte('\n')
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(label)))
		row := grid[label]
		for i := 0; i < days; i++ {
			if i < len(row) && row[i] {
				b.WriteString("# ")
			} else {
				b.WriteString("  ")
			}
		}
	}
	return b.String(), true
}
