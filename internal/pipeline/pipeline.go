// Package pipeline drives one document through the extraction-merge-
// normalize flow: pages are formatted, split when oversized, sent to the
// extraction engine and folded into the merge state strictly in page order.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/invoice-pipeline/constants"
	"github.com/joseph-ayodele/invoice-pipeline/internal/common"
	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
	"github.com/joseph-ayodele/invoice-pipeline/internal/layout"
	"github.com/joseph-ayodele/invoice-pipeline/internal/spreadsheet"
)

// Extractor is the seam between the pipeline and the extraction adapter.
type Extractor interface {
	ExtractPage(ctx context.Context, pageText string) ([]invoice.Fragment, error)
}

// LayoutAnalyzer supplies per-page content for scanned documents. It is an
// external collaborator; the pipeline only consumes its ordered output.
type LayoutAnalyzer interface {
	AnalyzePages(ctx context.Context, path string) ([]layout.PageContent, error)
}

// Config tunes one pipeline instance.
type Config struct {
	// MaxPageChars is the formatted length above which a page is split at
	// table boundaries before extraction.
	MaxPageChars int
	// PageDelay paces consecutive extraction-engine calls.
	PageDelay time.Duration
	// ItemsPerPage is the storage page size for completed invoices.
	ItemsPerPage int
	// RowsPerChunk is the spreadsheet chunk size.
	RowsPerChunk int
}

func (c *Config) fillDefaults() {
	if c.MaxPageChars <= 0 {
		c.MaxPageChars = 16000
	}
	if c.PageDelay < 0 {
		c.PageDelay = 0
	}
	if c.ItemsPerPage <= 0 {
		c.ItemsPerPage = 10
	}
	if c.RowsPerChunk <= 0 {
		c.RowsPerChunk = spreadsheet.DefaultRowsPerChunk
	}
}

// Pipeline processes one document at a time. It holds no cross-document
// state, so distinct documents can run through distinct calls concurrently.
type Pipeline struct {
	extractor Extractor
	analyzer  LayoutAnalyzer
	cfg       Config
	logger    *slog.Logger
}

func New(extractor Extractor, analyzer LayoutAnalyzer, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.fillDefaults()
	return &Pipeline{
		extractor: extractor,
		analyzer:  analyzer,
		cfg:       cfg,
		logger:    logger,
	}
}

// ProcessFile turns one source file into completed invoices. Spreadsheets
// are chunked locally; documents go through the layout analyzer. An
// unsupported extension or unreadable file is fatal for the document and
// produces no partial output.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) ([]*invoice.Invoice, error) {
	var (
		pages []layout.PageContent
		err   error
	)
	switch constants.FormatForPath(path) {
	case constants.SPREADSHEET:
		p.logger.Info("pipeline.file.spreadsheet", "path", path)
		pages, err = spreadsheet.Chunk(path, p.cfg.RowsPerChunk, p.logger)
	case constants.DOCUMENT:
		p.logger.Info("pipeline.file.document", "path", path)
		if p.analyzer == nil {
			return nil, common.NewAppError("NO_ANALYZER", "no layout analyzer configured", common.ErrUnsupportedFormat)
		}
		pages, err = p.analyzer.AnalyzePages(ctx, path)
	default:
		return nil, common.NewAppError("UNSUPPORTED_FORMAT", path, common.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	return p.ProcessPages(ctx, pages)
}

// ProcessPages folds an ordered page stream into completed invoices. Pages
// are processed sequentially: the single open invoice is carried across
// pages, so reordering would corrupt merge decisions. A page whose
// extraction fails is logged and skipped; the rest of the document still
// contributes. Only context cancellation aborts the whole document.
func (p *Pipeline) ProcessPages(ctx context.Context, pages []layout.PageContent) ([]*invoice.Invoice, error) {
	merger := invoice.NewMerger(p.logger)
	calls := 0

	for i, page := range pages {
		pageNum := i + 1
		if page.Chunk != nil && page.Chunk.PageNumber > 0 {
			pageNum = page.Chunk.PageNumber
		}

		text := layout.FormatPage(page, pageNum)

		segments := []string{text}
		if len(text) > p.cfg.MaxPageChars {
			segments = layout.SplitAtTables(text)
			p.logger.Info("pipeline.page.split",
				"page", pageNum,
				"chars", len(text),
				"segments", len(segments),
			)
		}

		for _, segment := range segments {
			if calls > 0 {
				if err := p.pace(ctx); err != nil {
					return nil, err
				}
			}
			calls++

			frags, err := p.extractor.ExtractPage(ctx, segment)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				p.logger.Error("pipeline.page.failed", "page", pageNum, "error", err)
				continue
			}
			merger.FoldAll(frags)
		}
	}

	merger.Flush()

	completed := merger.Completed()
	invoices := make([]*invoice.Invoice, 0, len(completed))
	for _, frag := range completed {
		invoices = append(invoices, invoice.ToInvoice(frag, p.cfg.ItemsPerPage, p.logger))
	}

	p.logger.Info("pipeline.document.ok",
		"pages", len(pages),
		"engine_calls", calls,
		"invoices", len(invoices),
	)
	return invoices, nil
}

// pace waits the configured delay between engine calls, respecting
// cancellation.
func (p *Pipeline) pace(ctx context.Context) error {
	if p.cfg.PageDelay <= 0 {
		return nil
	}
	t := time.NewTimer(p.cfg.PageDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
