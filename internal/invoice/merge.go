package invoice

import (
	"log/slog"
)

// Merger folds a stream of per-page (or per-segment) extraction fragments
// into completed invoices. It owns exactly one open fragment at a time, so a
// single Merger must only ever be driven by one document's page stream, in
// page order. Different documents use different Mergers and share nothing.
type Merger struct {
	open      Fragment
	completed []Fragment
	logger    *slog.Logger
}

func NewMerger(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{logger: logger}
}

// FoldAll applies Fold to each fragment in order.
func (m *Merger) FoldAll(frags []Fragment) {
	for _, f := range frags {
		m.Fold(f)
	}
}

// Fold merges one fragment into the running state. A fragment matching the
// open invoice's number contributes its items (duplicates retained: the
// engine legitimately reports the same item number more than once for cases
// shipped separately) and may overwrite the declared total. A different
// number closes the open invoice and starts a new one. Fragments with
// neither an invoice number nor items are no-ops.
func (m *Merger) Fold(frag Fragment) {
	if frag == nil {
		return
	}
	num := frag.InvoiceNumber()
	items := frag.Items()
	if num == "" && len(items) == 0 {
		m.logger.Debug("merge.fold.noop")
		return
	}

	if m.open != nil && num == m.open.InvoiceNumber() {
		m.open.AppendItems(items)
		if t := frag.Total(); t != 0 {
			m.open["Total"] = t
		}
		m.logger.Debug("merge.fold.appended", "invoice_number", num, "items", len(items))
		return
	}

	if m.open != nil {
		m.completed = append(m.completed, m.open)
		m.logger.Debug("merge.fold.closed", "invoice_number", m.open.InvoiceNumber())
	}
	m.open = frag
	m.logger.Debug("merge.fold.opened", "invoice_number", num, "items", len(items))
}

// Flush closes the open invoice at end of document, if any.
func (m *Merger) Flush() {
	if m.open != nil {
		m.completed = append(m.completed, m.open)
		m.logger.Debug("merge.flush", "invoice_number", m.open.InvoiceNumber())
		m.open = nil
	}
}

// Completed returns the invoices closed so far, in completion order.
func (m *Merger) Completed() []Fragment {
	return m.completed
}
