package invoice

// Paginate stamps every item with its page number and in-page index and
// refreshes the invoice's pagination metadata. Page numbering is 1-based and
// contiguous; the final page may be short.
func Paginate(inv *Invoice) {
	if inv.ItemsPerPage <= 0 {
		inv.ItemsPerPage = 10
	}
	per := inv.ItemsPerPage

	for idx := range inv.Items {
		inv.Items[idx].PageNumber = idx/per + 1
		inv.Items[idx].ItemIndex = idx % per
	}

	inv.TotalItems = len(inv.Items)
	inv.TotalPages = (inv.TotalItems + per - 1) / per
	if inv.TotalPages < 1 {
		inv.TotalPages = 1
	}
	if inv.Page < 1 {
		inv.Page = 1
	}
	if inv.Page > inv.TotalPages {
		inv.Page = inv.TotalPages
	}
}

// PageBatch is one page-sized slice of an invoice's items, ready for store
// submission together with its position in the invoice's pagination.
type PageBatch struct {
	Page       int
	TotalPages int
	Items      []InvoiceItem
}

// PageBatches groups the invoice's items into ordered fixed-size batches.
// Slices alias the invoice's item list; callers must not mutate them.
func PageBatches(inv *Invoice) []PageBatch {
	Paginate(inv)

	per := inv.ItemsPerPage
	batches := make([]PageBatch, 0, inv.TotalPages)
	for start := 0; start < len(inv.Items); start += per {
		end := start + per
		if end > len(inv.Items) {
			end = len(inv.Items)
		}
		batches = append(batches, PageBatch{
			Page:       start/per + 1,
			TotalPages: inv.TotalPages,
			Items:      inv.Items[start:end],
		})
	}
	return batches
}

// ItemsForPage returns the items on a specific 1-based page.
func (inv *Invoice) ItemsForPage(page int) []InvoiceItem {
	per := inv.ItemsPerPage
	if per <= 0 {
		per = 10
	}
	start := (page - 1) * per
	if start < 0 || start >= len(inv.Items) {
		return nil
	}
	end := start + per
	if end > len(inv.Items) {
		end = len(inv.Items)
	}
	return inv.Items[start:end]
}
