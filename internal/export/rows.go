// Package export renders completed invoices as flat tabular files for
// standalone runs: one row per line item with the header fields repeated.
package export

import (
	"strconv"

	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
)

// Headers is the exported column order; header-level fields first, then the
// item-level fields.
var Headers = []string{
	"Supplier Name", "Sold to Address", "Order Date", "Ship Date", "Invoice Number",
	"Shipping Address", "Total", "Item Number", "Item Name", "Quantity In a Case",
	"Measurement Of Each Item", "Measured In", "Quantity Shipped", "Extended Price",
	"Total Units Ordered", "Case Price", "Catch Weight", "Priced By",
	"Splitable", "Split Price", "Cost of a Unit", "Cost of Each Item", "Currency", "Product Category",
}

// Rows flattens invoices into export rows matching Headers. Missing values
// default to "N/A".
func Rows(invoices []*invoice.Invoice) [][]string {
	var rows [][]string
	for _, inv := range invoices {
		for _, item := range inv.Items {
			rows = append(rows, []string{
				orNA(inv.SupplierName),
				orNA(inv.SoldToAddress),
				orNA(inv.OrderDate),
				orNA(inv.ShipDate),
				orNA(inv.InvoiceNumber),
				orNA(inv.ShippingAddress),
				num(inv.Total),
				orNA(item.ItemNumber),
				orNA(item.ItemName),
				num(item.QuantityInCase),
				num(item.Measurement),
				orNA(item.MeasuredIn),
				num(item.QuantityShipped),
				num(item.ExtendedPrice),
				num(item.TotalUnitsOrdered),
				num(item.CasePrice),
				orNA(item.CatchWeight),
				orNA(item.PricedBy),
				orNA(item.Splitable),
				orNA(item.SplitPrice),
				num(item.CostOfAUnit),
				num(item.CostOfEachItem),
				orNA(item.Currency),
				orNA(item.ProductCategory),
			})
		}
	}
	return rows
}

func orNA(s string) string {
	if s == "" {
		return invoice.NotApplicable
	}
	return s
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
