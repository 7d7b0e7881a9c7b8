package invoice

import (
	"errors"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-pipeline/constants"
	"github.com/joseph-ayodele/invoice-pipeline/internal/packsize"
)

// Fragment is one invoice-shaped record as recovered from a single
// extraction call: loosely typed, possibly partial, keyed by the wire field
// names the engine is prompted with. Dynamic typing stops here; everything
// downstream of ToInvoice works on the strict types.
type Fragment map[string]any

// InvoiceNumber returns the fragment's invoice identity, or "".
func (f Fragment) InvoiceNumber() string {
	return f.str("Invoice Number")
}

// Total returns the declared invoice total, or 0.
func (f Fragment) Total() float64 {
	return f.num("Total")
}

// Items returns the raw line items. Both wire spellings are accepted.
func (f Fragment) Items() []map[string]any {
	for _, key := range []string{"List of Items", "Items"} {
		raw, ok := f[key].([]any)
		if !ok {
			continue
		}
		items := make([]map[string]any, 0, len(raw))
		for _, el := range raw {
			if m, ok := el.(map[string]any); ok {
				items = append(items, m)
			}
		}
		return items
	}
	return nil
}

// AppendItems concatenates more raw items onto the fragment, creating the
// list if needed. Duplicates are kept by design.
func (f Fragment) AppendItems(items []map[string]any) {
	key := "List of Items"
	if _, ok := f[key]; !ok {
		if _, ok := f["Items"]; ok {
			key = "Items"
		}
	}
	existing, _ := f[key].([]any)
	for _, it := range items {
		existing = append(existing, it)
	}
	f[key] = existing
}

func (f Fragment) str(key string) string {
	return coerceString(f[key])
}

func (f Fragment) num(key string) float64 {
	return coerceFloat(f[key], 0)
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	return ""
}

func coerceFloat(v any, def float64) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		s = strings.TrimPrefix(s, "$")
		if s == "" || strings.EqualFold(s, "n/a") {
			return def
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return def
}

// ToInvoice validates and converts a merged fragment into the typed record,
// filling in the resolved location, the derived quantity/price fields, the
// catch-weight flag and the pagination metadata. Items that fail validation
// are skipped and logged; their siblings are unaffected.
func ToInvoice(f Fragment, itemsPerPage int, logger *slog.Logger) *Invoice {
	if logger == nil {
		logger = slog.Default()
	}
	if itemsPerPage <= 0 {
		itemsPerPage = 10
	}

	inv := &Invoice{
		SupplierName:    f.str("Supplier Name"),
		SoldToAddress:   f.str("Sold to Address"),
		OrderDate:       f.str("Order Date"),
		ShipDate:        f.str("Ship Date"),
		InvoiceNumber:   f.InvoiceNumber(),
		ShippingAddress: f.str("Shipping Address"),
		Total:           f.Total(),
		PONumber:        rand.Intn(90000) + 10000,
		Status:          f.str("status"),
		ItemsPerPage:    itemsPerPage,
	}
	inv.Location = ResolveLocationFrom(inv.ShippingAddress, inv.SoldToAddress)

	var prev *InvoiceItem
	for idx, raw := range f.Items() {
		item, err := convertItem(raw, prev)
		if err != nil {
			logger.Warn("invoice.item.skipped",
				"invoice_number", inv.InvoiceNumber,
				"item_index", idx,
				"error", err,
			)
			continue
		}
		inv.Items = append(inv.Items, item)
		prev = &inv.Items[len(inv.Items)-1]
	}

	Paginate(inv)
	return inv
}

// convertItem turns one raw item map into a typed InvoiceItem, applying the
// documented defaults and recomputing every derived field so stored numbers
// are internally consistent regardless of what the engine reported.
func convertItem(raw map[string]any, prev *InvoiceItem) (InvoiceItem, error) {
	frag := Fragment(raw)

	item := InvoiceItem{
		ItemNumber: frag.str("Item Number"),
		ItemName:   frag.str("Item Name"),
		PricedBy:   frag.str("Priced By"),
	}

	category, _ := constants.CanonicalizeCategory(frag.str("Product Category"))
	item.ProductCategory = string(category)

	item.Currency = strings.ToUpper(frag.str("Currency"))
	if item.Currency == "" {
		item.Currency = "USD"
	}

	ps := parsePack(frag)
	item.QuantityInCase = ps.QuantityInCase
	item.Measurement = ps.Measurement
	item.MeasuredIn = ps.Unit

	item.QuantityShipped = coerceFloat(raw["Quantity Shipped"], 1)
	item.ExtendedPrice = frag.num("Extended Price")
	item.CasePrice = frag.num("Case Price")

	if item.QuantityInCase < 0 || item.Measurement < 0 || item.QuantityShipped < 0 {
		return InvoiceItem{}, errors.New("negative quantity")
	}
	if item.ExtendedPrice < 0 || item.CasePrice < 0 {
		return InvoiceItem{}, errors.New("negative price")
	}

	item.Splitable = normalizeYesNo(frag.str("Splitable"))
	splitable := item.Splitable == "YES"

	derived := packsize.Calculate(ps, item.QuantityShipped, item.ExtendedPrice, item.CasePrice, splitable)
	item.QuantityShipped = derived.QuantityShipped
	item.TotalUnitsOrdered = derived.TotalUnitsOrdered
	item.CostOfAUnit = derived.CostOfAUnit
	item.CostOfEachItem = derived.CostOfEachItem
	item.SplitPrice = derived.SplitPrice

	item.CatchWeight = catchWeight(frag.str("Catch Weight"), item, prev)
	return item, nil
}

// parsePack prefers an explicit "Pack Size" string; otherwise it rebuilds
// the pack from the engine-reported quantity fields, canonicalizing the unit.
func parsePack(frag Fragment) packsize.PackSize {
	qic := frag.num("Quantity In a Case")
	meas := frag.num("Measurement Of Each Item")

	if raw := frag.str("Pack Size"); raw != "" && (qic == 0 || meas == 0) {
		return packsize.Parse(raw)
	}

	if qic <= 0 {
		qic = 1
	}
	if meas <= 0 {
		meas = 1
	}
	rawUnit := frag.str("Measured In")
	unit := rawUnit
	if canonical, ok := constants.CanonicalUnit(rawUnit); ok {
		unit = canonical
	}
	return packsize.PackSize{
		QuantityInCase: qic,
		Measurement:    meas,
		RawUnit:        rawUnit,
		Unit:           unit,
	}
}

// catchWeight applies the positional heuristic: the same item number as the
// previous line with a different quantity shipped indicates a catch-weight
// item. An explicit engine "YES" is honored as-is. The rule depends on
// extraction-reported ordering; revisit if the engine stops preserving it.
func catchWeight(reported string, item InvoiceItem, prev *InvoiceItem) string {
	if strings.EqualFold(reported, "YES") {
		return "YES"
	}
	if prev != nil && item.ItemNumber != "" &&
		item.ItemNumber == prev.ItemNumber &&
		item.QuantityShipped != prev.QuantityShipped {
		return "YES"
	}
	return NotApplicable
}

func normalizeYesNo(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "YES") {
		return "YES"
	}
	return "NO"
}
