package hooks

import (
	"context"

	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/internal/store"
)

// OrderStats summarizes a user's order history.
type OrderStats struct {
	TotalOrders    int
	TotalSpent     float64
	PendingCount   int
	ShippedCount   int
	CompletedCount int
	CancelledCount int
}

// OrderHistory provides the order-page operations over the order
// container.
type OrderHistory struct {
	orders *store.Orders
}

// NewOrderHistory wraps the order container.
func NewOrderHistory(orders *store.Orders) *OrderHistory {
	return &OrderHistory{orders: orders}
}

// Load fetches the user's orders unless a fetch is already in flight.
func (h *OrderHistory) Load(ctx context.Context) error {
	if h.orders.IsLoading() {
		return nil
	}
	return h.orders.Fetch(ctx)
}

// Refresh always fetches, replacing the cache on success.
func (h *OrderHistory) Refresh(ctx context.Context) error {
	return h.orders.Fetch(ctx)
}

// Details returns the order from cache when present, otherwise fetches
// it.
func (h *OrderHistory) Details(ctx context.Context, id int) (*model.Order, error) {
	if order := h.orders.ByID(id); order != nil {
		return order, nil
	}
	return h.orders.FetchByID(ctx, id)
}

// ChangeStatus forwards a status transition (back-office action).
func (h *OrderHistory) ChangeStatus(ctx context.Context, id int, status model.OrderStatus) store.OrderResult {
	return h.orders.UpdateStatus(ctx, id, status)
}

// Stats derives the history summary from the cached orders.
func (h *OrderHistory) Stats() OrderStats {
	return OrderStats{
		TotalOrders:    h.orders.Count(),
		TotalSpent:     h.orders.TotalSpent(),
		PendingCount:   len(h.orders.ByStatus(model.OrderStatusPending)),
		ShippedCount:   len(h.orders.ByStatus(model.OrderStatusShipped)),
		CompletedCount: len(h.orders.ByStatus(model.OrderStatusPaid)),
		CancelledCount: len(h.orders.ByStatus(model.OrderStatusCancelled)),
	}
}

// CompletedSpend sums TotalAmount over paid orders only, for the
// dashboard's revenue-style figures.
func (h *OrderHistory) CompletedSpend() float64 {
	total := 0.0
	for _, order := range h.orders.ByStatus(model.OrderStatusPaid) {
		total += order.TotalAmount
	}
	return total
}
