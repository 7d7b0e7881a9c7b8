package layout

// Table is one detected table block: a grid of string cells addressed by
// (row, column). Rows are in reading order; ragged rows are tolerated and
// rendered with empty strings for the missing columns.
type Table struct {
	Rows [][]string
}

// NumCols returns the widest row length in the grid.
func (t Table) NumCols() int {
	n := 0
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// ChunkInfo describes which slice of a spreadsheet a page covers. Only set
// for spreadsheet sources; document sources have natural page boundaries.
type ChunkInfo struct {
	StartRow   int
	EndRow     int
	TotalRows  int
	PageNumber int
	TotalPages int
}

// PageContent is one page's extracted material, produced either by the
// external layout analyzer or by the spreadsheet chunker. It is consumed
// once by the formatter and never mutated afterwards.
type PageContent struct {
	// Text lines in reading order (top-to-bottom, then left-to-right).
	Text []string
	// Tables in the order they appear on the page.
	Tables []Table
	// Chunk is nil for document sources.
	Chunk *ChunkInfo
}
