package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
)

// Adapter sends formatted page text to the extraction engine and recovers
// invoice fragments from its reply. It performs no retries of its own.
type Adapter struct {
	engine ChatCompleter
	schema map[string]any
	logger *slog.Logger
}

func NewAdapter(engine ChatCompleter, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		engine: engine,
		schema: BuildFragmentJSONSchema(),
		logger: logger,
	}
}

// ExtractPage runs one engine call for a formatted page (or oversized-page
// segment) and returns zero or more fragments. An engine transport error is
// returned to the caller; an unparseable reply is not an error, the page
// just yields nothing. Fragments whose shape fails schema validation are
// logged and dropped individually.
func (a *Adapter) ExtractPage(ctx context.Context, pageText string) ([]invoice.Fragment, error) {
	rid := uuid.New().String()
	start := time.Now()

	a.logger.Info("extract.page.start",
		"req_id", rid,
		"text_len", len(pageText),
	)

	reply, err := a.engine.Complete(ctx, SystemMessage, BuildPrompt(pageText))
	if err != nil {
		a.logger.Error("extract.page.engine_error",
			"req_id", rid,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	recovered := RecoverFragments(reply, a.logger)

	frags := make([]invoice.Fragment, 0, len(recovered))
	for i, frag := range recovered {
		raw, err := json.Marshal(frag)
		if err != nil {
			a.logger.Warn("extract.fragment.encode_failed", "req_id", rid, "index", i, "error", err)
			continue
		}
		if err := ValidateJSONAgainstSchema(a.schema, raw); err != nil {
			a.logger.Warn("extract.fragment.rejected", "req_id", rid, "index", i, "error", err)
			continue
		}
		frags = append(frags, frag)
	}

	a.logger.Info("extract.page.ok",
		"req_id", rid,
		"fragments", len(frags),
		"rejected", len(recovered)-len(frags),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return frags, nil
}
