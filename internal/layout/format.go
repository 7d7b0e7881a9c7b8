package layout

import (
	"fmt"
	"strings"
)

// FormatPage renders one page into the canonical text representation the
// extraction engine is prompted with: an explicit page marker, numbered text
// lines, then each table framed by start/end markers with a header line and
// numbered rows. The output is a pure function of its input.
func FormatPage(page PageContent, pageNum int) string {
	var content []string

	content = append(content, fmt.Sprintf("\n----- Page %d Start -----\n", pageNum))

	content = append(content, "TEXT CONTENT:")
	for lineNum, line := range page.Text {
		content = append(content, fmt.Sprintf("%d:%s", lineNum+1, line))
	}

	for tableIdx, table := range page.Tables {
		content = append(content, fmt.Sprintf("\n----- Table %d Start -----\n", tableIdx+1))

		rows := renderRows(table)
		if len(rows) > 0 {
			content = append(content, "Header: "+rows[0])
			for rowIdx, row := range rows[1:] {
				content = append(content, fmt.Sprintf("Row %d: %s", rowIdx+1, row))
			}
		}

		content = append(content, fmt.Sprintf("----- Table %d End -----\n", tableIdx+1))
	}

	content = append(content, fmt.Sprintf("----- Page %d End -----\n", pageNum))

	return strings.Join(content, "\n")
}

// renderRows flattens the grid into tab-joined lines, padding short rows so
// every line carries the same column count.
func renderRows(t Table) []string {
	cols := t.NumCols()
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, cols)
		copy(cells, row)
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return lines
}
