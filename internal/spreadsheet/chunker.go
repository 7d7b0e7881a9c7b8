// Package spreadsheet turns tabular files into page-shaped content.
// Spreadsheets have no natural page boundary, so the chunker imposes a
// fixed-size one, repeating the header row in every chunk so the extraction
// engine always sees column context.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-pipeline/constants"
	"github.com/joseph-ayodele/invoice-pipeline/internal/common"
	"github.com/joseph-ayodele/invoice-pipeline/internal/layout"
)

// DefaultRowsPerChunk is the fixed chunk size when none is configured.
const DefaultRowsPerChunk = 10

// Chunk reads a spreadsheet and splits its data rows into fixed-size pages.
// Each page carries a text preamble describing the file, the header
// inventory and the row range, plus one table whose first row is the header.
// A file that cannot be opened or parsed is a document-fatal error.
func Chunk(path string, rowsPerChunk int, logger *slog.Logger) ([]layout.PageContent, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if rowsPerChunk <= 0 {
		rowsPerChunk = DefaultRowsPerChunk
	}

	rows, err := readRows(path)
	if err != nil {
		return nil, common.WrapError(err, "read spreadsheet")
	}
	if len(rows) == 0 {
		logger.Warn("spreadsheet.chunk.empty", "path", path)
		return nil, nil
	}

	headers := rows[0]
	data := rows[1:]
	totalRows := len(data)
	numPages := (totalRows + rowsPerChunk - 1) / rowsPerChunk
	if numPages == 0 {
		// header-only file still yields one page so the engine can report
		// there are no line items
		numPages = 1
	}

	base := filepath.Base(path)
	pages := make([]layout.PageContent, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		startIdx := (pageNum - 1) * rowsPerChunk
		endIdx := startIdx + rowsPerChunk
		if endIdx > totalRows {
			endIdx = totalRows
		}
		chunkRows := data[startIdx:endIdx]

		text := []string{
			fmt.Sprintf("Page %d of file: %s", pageNum, base),
			"Header Information:",
		}
		for idx, header := range headers {
			text = append(text, fmt.Sprintf("%s: Column %d", header, idx+1))
		}
		text = append(text,
			"",
			"Data Format:",
			fmt.Sprintf("Total Columns: %d", len(headers)),
			fmt.Sprintf("Rows in this chunk: %d", len(chunkRows)),
			fmt.Sprintf("Row range: %d to %d", startIdx+1, endIdx),
		)

		tableRows := make([][]string, 0, len(chunkRows)+1)
		tableRows = append(tableRows, headers)
		tableRows = append(tableRows, chunkRows...)

		pages = append(pages, layout.PageContent{
			Text:   text,
			Tables: []layout.Table{{Rows: tableRows}},
			Chunk: &layout.ChunkInfo{
				StartRow:   startIdx + 1,
				EndRow:     endIdx,
				TotalRows:  totalRows,
				PageNumber: pageNum,
				TotalPages: numPages,
			},
		})
		logger.Debug("spreadsheet.chunk.page",
			"path", base,
			"page", pageNum,
			"total_pages", numPages,
			"rows", len(chunkRows),
		)
	}

	logger.Info("spreadsheet.chunk.ok", "path", base, "pages", numPages, "rows", totalRows)
	return pages, nil
}

// readRows loads the whole sheet as strings. CSV goes through encoding/csv;
// workbook formats go through excelize (first sheet only).
func readRows(path string) ([][]string, error) {
	if constants.NormalizeExt(filepath.Ext(path)) == "csv" {
		return readCSV(path)
	}
	return readWorkbook(path)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	// excelize trims trailing empty cells per row; pad so every row matches
	// the header width
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i, r := range rows {
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			rows[i] = padded
		}
		for j, c := range rows[i] {
			rows[i][j] = strings.TrimSpace(c)
		}
	}
	return rows, nil
}
