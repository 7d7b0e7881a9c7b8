package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInvoiceHeader(t *testing.T) {
	f := Fragment{
		"Supplier Name":    "ACME Wholesale",
		"Sold to Address":  "12 Elm St, Boston, MA 02108",
		"Order Date":       "01/15/2026",
		"Ship Date":        "01/17/2026",
		"Invoice Number":   "INV-100",
		"Shipping Address": "77 Harbor Way, Oakland, CA 94607",
		"Total":            199.99,
	}

	inv := ToInvoice(f, 10, nil)

	assert.Equal(t, "ACME Wholesale", inv.SupplierName)
	assert.Equal(t, "INV-100", inv.InvoiceNumber)
	assert.Equal(t, 199.99, inv.Total)
	assert.Equal(t, "Oakland, CA", inv.Location)
	assert.GreaterOrEqual(t, inv.PONumber, 10000)
	assert.LessOrEqual(t, inv.PONumber, 99999)
	assert.Equal(t, 1, inv.TotalPages)
}

func TestToInvoicePackSizeString(t *testing.T) {
	f := Fragment{
		"Invoice Number": "INV-101",
		"List of Items": []any{
			map[string]any{
				"Item Number":      "4417",
				"Item Name":        "KETCHUP FANCY",
				"Pack Size":        "6 64 OZ",
				"Quantity Shipped": 2.0,
				"Extended Price":   76.8,
				"Case Price":       38.4,
				"Splitable":        "yes",
				"Product Category": "Dry Grocery",
			},
		},
	}

	inv := ToInvoice(f, 10, nil)
	require.Len(t, inv.Items, 1)
	it := inv.Items[0]

	assert.Equal(t, 6.0, it.QuantityInCase)
	assert.Equal(t, 64.0, it.Measurement)
	assert.Equal(t, "ounces", it.MeasuredIn)
	assert.Equal(t, 2.0, it.QuantityShipped)
	assert.Equal(t, 768.0, it.TotalUnitsOrdered)
	assert.InDelta(t, 0.1, it.CostOfAUnit, 1e-9)
	assert.InDelta(t, 6.4, it.CostOfEachItem, 1e-9)
	assert.Equal(t, "YES", it.Splitable)
	assert.Equal(t, "6.40", it.SplitPrice)
	assert.Equal(t, "USD", it.Currency)
	assert.Equal(t, "Dry Grocery", it.ProductCategory)

	// derived numbers stay internally consistent
	assert.InDelta(t, it.ExtendedPrice, it.CostOfAUnit*it.TotalUnitsOrdered, 1e-9)
}

func TestToInvoiceEngineQuantityFields(t *testing.T) {
	f := Fragment{
		"Invoice Number": "INV-102",
		"List of Items": []any{
			map[string]any{
				"Item Number":              "900",
				"Quantity In a Case":       4.0,
				"Measurement Of Each Item": 5.0,
				"Measured In":              "LB",
				"Quantity Shipped":         3.0,
				"Extended Price":           "$120.00",
				"Splitable":                "no",
			},
		},
	}

	inv := ToInvoice(f, 10, nil)
	require.Len(t, inv.Items, 1)
	it := inv.Items[0]

	assert.Equal(t, "pounds", it.MeasuredIn)
	assert.Equal(t, 60.0, it.TotalUnitsOrdered)
	assert.InDelta(t, 2.0, it.CostOfAUnit, 1e-9)
	assert.Equal(t, "NO", it.Splitable)
	assert.Equal(t, NotApplicable, it.SplitPrice)
}

func TestToInvoiceItemDefaults(t *testing.T) {
	f := Fragment{
		"Invoice Number": "INV-103",
		"List of Items": []any{
			map[string]any{"Item Name": "MYSTERY ITEM"},
		},
	}

	inv := ToInvoice(f, 10, nil)
	require.Len(t, inv.Items, 1)
	it := inv.Items[0]

	assert.Equal(t, 1.0, it.QuantityInCase)
	assert.Equal(t, 1.0, it.Measurement)
	assert.Equal(t, 1.0, it.QuantityShipped)
	assert.Equal(t, 1.0, it.TotalUnitsOrdered)
	assert.Equal(t, "USD", it.Currency)
	assert.Equal(t, "OTHER", it.ProductCategory)
	assert.Equal(t, NotApplicable, it.SplitPrice)
	assert.Equal(t, NotApplicable, it.CatchWeight)
}

func TestToInvoiceSkipsInvalidItems(t *testing.T) {
	f := Fragment{
		"Invoice Number": "INV-104",
		"List of Items": []any{
			map[string]any{"Item Number": "good-1"},
			map[string]any{"Item Number": "bad", "Extended Price": -5.0},
			map[string]any{"Item Number": "bad2", "Quantity Shipped": -1.0},
			map[string]any{"Item Number": "good-2"},
		},
	}

	inv := ToInvoice(f, 10, nil)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "good-1", inv.Items[0].ItemNumber)
	assert.Equal(t, "good-2", inv.Items[1].ItemNumber)
}

func TestCatchWeightHeuristic(t *testing.T) {
	f := Fragment{
		"Invoice Number": "INV-105",
		"List of Items": []any{
			map[string]any{"Item Number": "77", "Quantity Shipped": 1.0, "Extended Price": 10.0},
			map[string]any{"Item Number": "77", "Quantity Shipped": 2.0, "Extended Price": 20.0},
			map[string]any{"Item Number": "78", "Quantity Shipped": 2.0, "Extended Price": 5.0},
		},
	}

	inv := ToInvoice(f, 10, nil)
	require.Len(t, inv.Items, 3)

	assert.Equal(t, NotApplicable, inv.Items[0].CatchWeight)
	assert.Equal(t, "YES", inv.Items[1].CatchWeight)
	assert.Equal(t, NotApplicable, inv.Items[2].CatchWeight)
}

func TestCatchWeightReported(t *testing.T) {
	f := Fragment{
		"Invoice Number": "INV-106",
		"List of Items": []any{
			map[string]any{"Item Number": "5", "Catch Weight": "yes"},
		},
	}

	inv := ToInvoice(f, 10, nil)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "YES", inv.Items[0].CatchWeight)
}

func TestFragmentCoercion(t *testing.T) {
	f := Fragment{
		"Invoice Number": 12345.0,
		"Total":          "$1,234.50",
	}
	assert.Equal(t, "12345", f.InvoiceNumber())
	assert.Equal(t, 1234.5, f.Total())

	assert.Equal(t, 0.0, Fragment{"Total": "n/a"}.Total())
	assert.Equal(t, 0.0, Fragment{"Total": "garbage"}.Total())
}

func TestFragmentItemsBothSpellings(t *testing.T) {
	a := Fragment{"List of Items": []any{map[string]any{"Item Number": "1"}}}
	b := Fragment{"Items": []any{map[string]any{"Item Number": "2"}}}

	assert.Len(t, a.Items(), 1)
	assert.Len(t, b.Items(), 1)
	assert.Nil(t, Fragment{}.Items())

	b.AppendItems(a.Items())
	assert.Len(t, b.Items(), 2)
}
