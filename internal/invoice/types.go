// Package invoice holds the typed domain model plus the merge and
// pagination machinery that turns per-page extraction fragments into
// complete, storage-ready invoice records.
package invoice

// NotApplicable is the sentinel used for fields that have no meaningful
// value ("N/A" in every exported representation).
const NotApplicable = "N/A"

// InvoiceItem is one normalized line item.
type InvoiceItem struct {
	ItemNumber      string  `json:"Item Number"`
	ItemName        string  `json:"Item Name"`
	ProductCategory string  `json:"Product Category"`

	QuantityInCase    float64 `json:"Quantity In a Case"`
	Measurement       float64 `json:"Measurement Of Each Item"`
	MeasuredIn        string  `json:"Measured In"`
	QuantityShipped   float64 `json:"Quantity Shipped"`
	TotalUnitsOrdered float64 `json:"Total Units Ordered"`

	ExtendedPrice  float64 `json:"Extended Price"`
	CasePrice      float64 `json:"Case Price"`
	CostOfAUnit    float64 `json:"Cost of a Unit"`
	CostOfEachItem float64 `json:"Cost of Each Item"`
	Currency       string  `json:"Currency"`

	CatchWeight string `json:"Catch Weight"`
	PricedBy    string `json:"Priced By"`
	Splitable   string `json:"Splitable"`
	SplitPrice  string `json:"Split Price"`

	// Position within the invoice's own pagination (1-based page, 0-based
	// index within the page). Assigned by Paginate.
	PageNumber int `json:"page_number"`
	ItemIndex  int `json:"item_index"`
}

// Invoice is one complete document-level record.
type Invoice struct {
	SupplierName    string        `json:"Supplier Name"`
	SoldToAddress   string        `json:"Sold to Address"`
	OrderDate       string        `json:"Order Date"`
	ShipDate        string        `json:"Ship Date"`
	InvoiceNumber   string        `json:"Invoice Number"`
	ShippingAddress string        `json:"Shipping Address"`
	Total           float64       `json:"Total"`

	// PONumber is a random 5-digit display identifier. It is a storage-key
	// convenience only and carries no cross-run stability guarantee.
	PONumber int    `json:"PO_NUMBER"`
	Location string `json:"location"`
	Status   string `json:"status"`

	Items []InvoiceItem `json:"Items"`

	Page         int `json:"-"`
	TotalPages   int `json:"-"`
	ItemsPerPage int `json:"-"`
	TotalItems   int `json:"-"`
}
