package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Display(t *testing.T) {
	assert.Equal(t, DisplayCompleted, OrderStatusPaid.Display())
	assert.Equal(t, DisplayProcessing, OrderStatusShipped.Display())
	assert.Equal(t, DisplayPending, OrderStatusPending.Display())
	assert.Equal(t, DisplayCancelled, OrderStatusCancelled.Display())
	// Unknown statuses read as pending rather than blowing up a view
	assert.Equal(t, DisplayPending, OrderStatus("weird").Display())
}

func TestOrderStatus_Label(t *testing.T) {
	assert.Equal(t, "Completed", OrderStatusPaid.Label())
	assert.Equal(t, "Processing", OrderStatusShipped.Label())
	assert.Equal(t, "Pending", OrderStatusPending.Label())
	assert.Equal(t, "Cancelled", OrderStatusCancelled.Label())
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, status.Valid())
	}
	assert.False(t, OrderStatus("delivered").Valid())
}

func TestOrder_ItemCount(t *testing.T) {
	withItems := Order{Items: []OrderItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, withItems.ItemCount())

	withProducts := Order{Products: []Product{{ID: 1}, {ID: 2}}}
	assert.Equal(t, 2, withProducts.ItemCount())

	assert.Equal(t, 0, Order{}.ItemCount())
}

func TestProduct_StockFlags(t *testing.T) {
	assert.True(t, Product{Stock: 0}.OutOfStock())
	assert.False(t, Product{Stock: 1}.OutOfStock())

	assert.True(t, Product{Stock: 9}.LowStock())
	assert.False(t, Product{Stock: 10}.LowStock())
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{Product: Product{Price: 2.5}, Quantity: 4}
	assert.InDelta(t, 10.0, item.Subtotal(), 0.0001)
}
