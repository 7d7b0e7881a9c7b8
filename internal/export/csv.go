package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
)

// WriteCSV writes invoices as CSV to w, header row first.
func WriteCSV(w io.Writer, invoices []*invoice.Invoice, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows := Rows(invoices)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	logger.Info("export.csv.ok", "invoices", len(invoices), "rows", len(rows))
	return nil
}
