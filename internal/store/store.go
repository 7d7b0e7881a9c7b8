// Package store persists normalized invoices as page-sized batches. The
// pipeline hands over completed, already-paginated invoices; the store's
// only job is to write each page batch and acknowledge it.
package store

import (
	"context"

	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
)

// SubmitResult acknowledges one invoice submission.
type SubmitResult struct {
	InvoiceNumber string
	StoredPages   int
	StoredItems   int
}

// InvoiceStore is the persistence contract. Rows are keyed by user identity,
// invoice number and page index; resubmitting a page replaces it.
type InvoiceStore interface {
	SubmitInvoice(ctx context.Context, userID string, inv *invoice.Invoice) (SubmitResult, error)
	Close() error
}

// SubmitAll stores every invoice in order and sums the acknowledgements.
// The first store error aborts the batch.
func SubmitAll(ctx context.Context, s InvoiceStore, userID string, invoices []*invoice.Invoice) (pages, items int, err error) {
	for _, inv := range invoices {
		res, err := s.SubmitInvoice(ctx, userID, inv)
		if err != nil {
			return pages, items, err
		}
		pages += res.StoredPages
		items += res.StoredItems
	}
	return pages, items, nil
}
