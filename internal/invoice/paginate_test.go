package invoice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceWithItems(n, itemsPerPage int) *Invoice {
	inv := &Invoice{InvoiceNumber: "INV-1", ItemsPerPage: itemsPerPage}
	for i := 0; i < n; i++ {
		inv.Items = append(inv.Items, InvoiceItem{ItemNumber: fmt.Sprintf("it-%d", i)})
	}
	return inv
}

func TestPaginate(t *testing.T) {
	inv := invoiceWithItems(23, 10)
	Paginate(inv)

	assert.Equal(t, 23, inv.TotalItems)
	assert.Equal(t, 3, inv.TotalPages)

	assert.Equal(t, 1, inv.Items[0].PageNumber)
	assert.Equal(t, 0, inv.Items[0].ItemIndex)
	assert.Equal(t, 1, inv.Items[9].PageNumber)
	assert.Equal(t, 9, inv.Items[9].ItemIndex)
	assert.Equal(t, 2, inv.Items[10].PageNumber)
	assert.Equal(t, 0, inv.Items[10].ItemIndex)
	assert.Equal(t, 3, inv.Items[22].PageNumber)
	assert.Equal(t, 2, inv.Items[22].ItemIndex)
}

func TestPaginateEmptyInvoice(t *testing.T) {
	inv := invoiceWithItems(0, 10)
	Paginate(inv)

	assert.Equal(t, 0, inv.TotalItems)
	assert.Equal(t, 1, inv.TotalPages)
	assert.Equal(t, 1, inv.Page)
}

func TestPageBatches(t *testing.T) {
	inv := invoiceWithItems(23, 10)

	batches := PageBatches(inv)
	require.Len(t, batches, 3)

	assert.Equal(t, 1, batches[0].Page)
	assert.Len(t, batches[0].Items, 10)
	assert.Equal(t, 2, batches[1].Page)
	assert.Len(t, batches[1].Items, 10)
	assert.Equal(t, 3, batches[2].Page)
	assert.Len(t, batches[2].Items, 3)

	for _, b := range batches {
		assert.Equal(t, 3, b.TotalPages)
	}
	assert.Equal(t, "it-20", batches[2].Items[0].ItemNumber)
}

func TestItemsForPage(t *testing.T) {
	inv := invoiceWithItems(23, 10)
	Paginate(inv)

	assert.Len(t, inv.ItemsForPage(1), 10)
	assert.Len(t, inv.ItemsForPage(3), 3)
	assert.Nil(t, inv.ItemsForPage(4))
	assert.Nil(t, inv.ItemsForPage(0))
}
