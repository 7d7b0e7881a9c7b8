package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestChunkCSV(t *testing.T) {
	content := "Item,Qty,Price\n"
	for i := 0; i < 12; i++ {
		content += "widget,1,9.99\n"
	}
	path := writeTempCSV(t, content)

	pages, err := Chunk(path, 5, nil)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	// every chunk repeats the header row as the table's first row
	for i, p := range pages {
		require.Len(t, p.Tables, 1)
		assert.Equal(t, []string{"Item", "Qty", "Price"}, p.Tables[0].Rows[0])
		require.NotNil(t, p.Chunk)
		assert.Equal(t, i+1, p.Chunk.PageNumber)
		assert.Equal(t, 3, p.Chunk.TotalPages)
		assert.Equal(t, 12, p.Chunk.TotalRows)
	}

	assert.Len(t, pages[0].Tables[0].Rows, 6) // header + 5 data rows
	assert.Len(t, pages[2].Tables[0].Rows, 3) // header + final 2 rows

	assert.Equal(t, 1, pages[0].Chunk.StartRow)
	assert.Equal(t, 5, pages[0].Chunk.EndRow)
	assert.Equal(t, 11, pages[2].Chunk.StartRow)
	assert.Equal(t, 12, pages[2].Chunk.EndRow)

	// preamble names the file and the header columns
	assert.Contains(t, pages[0].Text, "Page 1 of file: orders.csv")
	assert.Contains(t, pages[0].Text, "Item: Column 1")
	assert.Contains(t, pages[0].Text, "Row range: 1 to 5")
}

func TestChunkHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "Item,Qty,Price\n")

	pages, err := Chunk(path, 10, nil)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	require.Len(t, pages[0].Tables, 1)
	assert.Len(t, pages[0].Tables[0].Rows, 1)
	assert.Equal(t, 0, pages[0].Chunk.TotalRows)
}

func TestChunkEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	pages, err := Chunk(path, 10, nil)
	require.NoError(t, err)
	assert.Nil(t, pages)
}

func TestChunkXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Item", "Qty"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"apples", 3}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"pears", 7}))

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	pages, err := Chunk(path, 10, nil)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	rows := pages[0].Tables[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Item", "Qty"}, rows[0])
	assert.Equal(t, []string{"apples", "3"}, rows[1])
	assert.Equal(t, []string{"pears", "7"}, rows[2])
}

func TestChunkMissingFile(t *testing.T) {
	_, err := Chunk(filepath.Join(t.TempDir(), "nope.csv"), 10, nil)
	assert.Error(t, err)
}
