package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/invoice-pipeline/internal/common"
	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS invoice_pages (
	id             UUID PRIMARY KEY,
	user_id        TEXT NOT NULL,
	invoice_number TEXT NOT NULL,
	po_number      INTEGER NOT NULL,
	supplier_name  TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	order_date     TEXT NOT NULL DEFAULT '',
	ship_date      TEXT NOT NULL DEFAULT '',
	total          DOUBLE PRECISION NOT NULL DEFAULT 0,
	page           INTEGER NOT NULL,
	total_pages    INTEGER NOT NULL,
	items_per_page INTEGER NOT NULL,
	total_items    INTEGER NOT NULL,
	items          JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, invoice_number, page)
);`

// PostgresStore is the pgx-backed InvoiceStore.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore creates a pgx pool from the store config, verifies
// connectivity and ensures the schema.
func NewPostgresStore(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("store.postgres.bad_dsn", "error", err)
		return nil, common.WrapError(err, "parse dsn")
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-pipeline"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("store.postgres.connect_failed", "error", err)
		return nil, common.WrapError(err, "connect postgres")
	}
	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return nil, common.WrapError(err, "ping postgres")
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, common.WrapError(err, "create schema")
	}

	logger.Info("store.postgres.open")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) SubmitInvoice(ctx context.Context, userID string, inv *invoice.Invoice) (SubmitResult, error) {
	start := time.Now()
	res := SubmitResult{InvoiceNumber: inv.InvoiceNumber}

	for _, batch := range invoice.PageBatches(inv) {
		items, err := json.Marshal(batch.Items)
		if err != nil {
			return res, common.WrapError(err, "encode items")
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO invoice_pages
				(id, user_id, invoice_number, po_number, supplier_name, location,
				 order_date, ship_date, total, page, total_pages, items_per_page,
				 total_items, items)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (user_id, invoice_number, page) DO UPDATE SET
				po_number   = EXCLUDED.po_number,
				total       = EXCLUDED.total,
				total_pages = EXCLUDED.total_pages,
				total_items = EXCLUDED.total_items,
				items       = EXCLUDED.items`,
			uuid.New(), userID, inv.InvoiceNumber, inv.PONumber,
			inv.SupplierName, inv.Location, inv.OrderDate, inv.ShipDate,
			inv.Total, batch.Page, batch.TotalPages, inv.ItemsPerPage,
			inv.TotalItems, items,
		)
		if err != nil {
			s.logger.Error("store.postgres.page_failed",
				"invoice_number", inv.InvoiceNumber,
				"page", batch.Page,
				"error", err,
			)
			return res, common.WrapError(err, "insert invoice page")
		}
		res.StoredPages++
		res.StoredItems += len(batch.Items)
	}

	s.logger.Info("store.postgres.submit_ok",
		"user_id", userID,
		"invoice_number", inv.InvoiceNumber,
		"pages", res.StoredPages,
		"items", res.StoredItems,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
