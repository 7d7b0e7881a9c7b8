package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/invoice-pipeline/internal/common"
	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS invoice_pages (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	invoice_number TEXT NOT NULL,
	po_number      INTEGER NOT NULL,
	supplier_name  TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	order_date     TEXT NOT NULL DEFAULT '',
	ship_date      TEXT NOT NULL DEFAULT '',
	total          REAL NOT NULL DEFAULT 0,
	page           INTEGER NOT NULL,
	total_pages    INTEGER NOT NULL,
	items_per_page INTEGER NOT NULL,
	total_items    INTEGER NOT NULL,
	items          TEXT NOT NULL,
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, invoice_number, page)
);`

// SQLiteStore is the embedded InvoiceStore, also used in-memory by the CLI.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the database and ensures the schema.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(ctx context.Context, dsn string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "ping sqlite")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "create schema")
	}

	logger.Info("store.sqlite.open", "dsn", dsn)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) SubmitInvoice(ctx context.Context, userID string, inv *invoice.Invoice) (SubmitResult, error) {
	start := time.Now()
	res := SubmitResult{InvoiceNumber: inv.InvoiceNumber}

	// one page batch at a time, in page order
	for _, batch := range invoice.PageBatches(inv) {
		items, err := json.Marshal(batch.Items)
		if err != nil {
			return res, common.WrapError(err, "encode items")
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO invoice_pages
				(id, user_id, invoice_number, po_number, supplier_name, location,
				 order_date, ship_date, total, page, total_pages, items_per_page,
				 total_items, items)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id, invoice_number, page) DO UPDATE SET
				po_number = excluded.po_number,
				total     = excluded.total,
				total_pages = excluded.total_pages,
				total_items = excluded.total_items,
				items     = excluded.items`,
			uuid.New().String(), userID, inv.InvoiceNumber, inv.PONumber,
			inv.SupplierName, inv.Location, inv.OrderDate, inv.ShipDate,
			inv.Total, batch.Page, batch.TotalPages, inv.ItemsPerPage,
			inv.TotalItems, string(items),
		)
		if err != nil {
			s.logger.Error("store.sqlite.page_failed",
				"invoice_number", inv.InvoiceNumber,
				"page", batch.Page,
				"error", err,
			)
			return res, common.WrapError(err, "insert invoice page")
		}
		res.StoredPages++
		res.StoredItems += len(batch.Items)
	}

	s.logger.Info("store.sqlite.submit_ok",
		"user_id", userID,
		"invoice_number", inv.InvoiceNumber,
		"pages", res.StoredPages,
		"items", res.StoredItems,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
