package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
	"github.com/joseph-ayodele/invoice-pipeline/internal/layout"
)

// scriptedExtractor replays canned responses in call order.
type scriptedExtractor struct {
	responses []func() ([]invoice.Fragment, error)
	calls     int
	texts     []string
}

func (s *scriptedExtractor) ExtractPage(_ context.Context, pageText string) ([]invoice.Fragment, error) {
	s.texts = append(s.texts, pageText)
	idx := s.calls
	s.calls++
	if idx >= len(s.responses) {
		return nil, nil
	}
	return s.responses[idx]()
}

func ok(frags ...invoice.Fragment) func() ([]invoice.Fragment, error) {
	return func() ([]invoice.Fragment, error) { return frags, nil }
}

func fail(msg string) func() ([]invoice.Fragment, error) {
	return func() ([]invoice.Fragment, error) { return nil, errors.New(msg) }
}

func frag(num string, items ...string) invoice.Fragment {
	f := invoice.Fragment{"Invoice Number": num}
	raw := make([]any, 0, len(items))
	for _, it := range items {
		raw = append(raw, any(map[string]any{"Item Number": it}))
	}
	if len(raw) > 0 {
		f["List of Items"] = raw
	}
	return f
}

func textPage(lines ...string) layout.PageContent {
	return layout.PageContent{Text: lines}
}

func TestProcessPagesMergesAcrossPages(t *testing.T) {
	ext := &scriptedExtractor{responses: []func() ([]invoice.Fragment, error){
		ok(frag("INV-A", "a1", "a2")),
		ok(frag("INV-A", "a3"), frag("INV-B", "b1")),
	}}
	p := New(ext, nil, Config{PageDelay: 0}, nil)

	invoices, err := p.ProcessPages(context.Background(), []layout.PageContent{
		textPage("page one"),
		textPage("page two"),
	})
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	assert.Equal(t, "INV-A", invoices[0].InvoiceNumber)
	require.Len(t, invoices[0].Items, 3)
	assert.Equal(t, "a3", invoices[0].Items[2].ItemNumber)

	assert.Equal(t, "INV-B", invoices[1].InvoiceNumber)
	assert.Len(t, invoices[1].Items, 1)
	assert.Equal(t, 2, ext.calls)
}

func TestProcessPagesFailureIsolation(t *testing.T) {
	ext := &scriptedExtractor{responses: []func() ([]invoice.Fragment, error){
		ok(frag("INV-A", "a1")),
		fail("engine unavailable"),
		ok(frag("INV-A", "a2")),
	}}
	p := New(ext, nil, Config{PageDelay: 0}, nil)

	invoices, err := p.ProcessPages(context.Background(), []layout.PageContent{
		textPage("one"), textPage("two"), textPage("three"),
	})
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	// page two failed but its siblings still contributed
	assert.Len(t, invoices[0].Items, 2)
	assert.Equal(t, 3, ext.calls)
}

func TestProcessPagesOversizedSplit(t *testing.T) {
	page := layout.PageContent{
		Text: []string{strings.Repeat("x", 50)},
		Tables: []layout.Table{
			{Rows: [][]string{{"h"}, {"1"}}},
			{Rows: [][]string{{"h"}, {"2"}}},
		},
	}

	ext := &scriptedExtractor{}
	p := New(ext, nil, Config{MaxPageChars: 40, PageDelay: 0}, nil)

	_, err := p.ProcessPages(context.Background(), []layout.PageContent{page})
	require.NoError(t, err)

	// pre-table text plus one call per table
	assert.Equal(t, 3, ext.calls)
	assert.Contains(t, ext.texts[1], "Table 1 Start")
	assert.NotContains(t, ext.texts[1], "Table 2 Start")
}

func TestProcessPagesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ext := &scriptedExtractor{responses: []func() ([]invoice.Fragment, error){
		func() ([]invoice.Fragment, error) {
			cancel()
			return nil, ctx.Err()
		},
	}}
	p := New(ext, nil, Config{PageDelay: 0}, nil)

	_, err := p.ProcessPages(ctx, []layout.PageContent{textPage("one"), textPage("two")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ext.calls)
}

func TestProcessFileUnsupported(t *testing.T) {
	p := New(&scriptedExtractor{}, nil, Config{}, nil)
	_, err := p.ProcessFile(context.Background(), "notes.txt")
	assert.Error(t, err)
}

func TestProcessFileDocumentWithoutAnalyzer(t *testing.T) {
	p := New(&scriptedExtractor{}, nil, Config{}, nil)
	_, err := p.ProcessFile(context.Background(), "scan.pdf")
	assert.Error(t, err)
}

func TestProcessFileSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "Item,Qty\nwidget,1\ngadget,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ext := &scriptedExtractor{responses: []func() ([]invoice.Fragment, error){
		ok(frag("INV-9", "widget", "gadget")),
	}}
	p := New(ext, nil, Config{PageDelay: 0}, nil)

	invoices, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-9", invoices[0].InvoiceNumber)
	assert.Len(t, invoices[0].Items, 2)

	// the engine saw the chunked spreadsheet, header row included
	require.Len(t, ext.texts, 1)
	assert.Contains(t, ext.texts[0], "orders.csv")
	assert.Contains(t, ext.texts[0], "Header: Item\tQty")
}
