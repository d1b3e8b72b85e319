package store

import (
	"context"
	"sync"

	"github.com/dotcomico/dotmarket-client/internal/apperrors"
	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// OrderAPI is the slice of the API client the order container needs.
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListMyOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int) (*model.Order, error)
	CreateOrder(ctx context.Context, input model.CreateOrderInput) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status model.OrderStatus) (*model.Order, error)
}

// OrderResult is the outcome of a network-backed order operation. The
// error is already display-ready; callers never see raw failures.
type OrderResult struct {
	Success bool
	Order   *model.Order
	Error   string
}

// Orders caches the user's orders and the currently viewed order, and
// mediates checkout and status changes against the remote API. Fetches
// replace the collection only on success; every failure is translated
// into a display message and leaves cached state intact.
type Orders struct {
	api OrderAPI

	mu       sync.Mutex
	orders   []model.Order
	current  *model.Order
	loading  bool
	errMsg   string
	fetchSeq uint64
}

// NewOrders creates an empty order container backed by api.
func NewOrders(api OrderAPI) *Orders {
	return &Orders{api: api}
}

// Fetch replaces the collection with the current user's orders. On
// failure the previous collection is kept and Err() carries the
// message. Overlapping fetches are sequenced: only the latest issued
// request may write.
func (o *Orders) Fetch(ctx context.Context) error {
	return o.fetch(ctx, o.api.ListMyOrders)
}

// FetchAll replaces the collection with every order on the platform
// (back-office view; the server enforces the role).
func (o *Orders) FetchAll(ctx context.Context) error {
	return o.fetch(ctx, o.api.ListOrders)
}

func (o *Orders) fetch(ctx context.Context, list func(context.Context) ([]model.Order, error)) error {
	o.mu.Lock()
	o.fetchSeq++
	seq := o.fetchSeq
	o.loading = true
	o.errMsg = ""
	o.mu.Unlock()

	orders, err := list(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	if seq != o.fetchSeq {
		// A newer fetch was issued while this one was in flight.
		logger.Debug("Discarding stale order fetch", map[string]interface{}{
			"seq":    seq,
			"latest": o.fetchSeq,
		})
		return nil
	}
	o.loading = false

	if err != nil {
		o.errMsg = apperrors.Message(err, "Failed to load orders")
		apperrors.Log(err, "orders.fetch")
		return err
	}

	o.orders = orders
	return nil
}

// FetchByID requests one order; on success it is upserted into the
// collection and becomes the current order. On failure nothing is
// mutated.
func (o *Orders) FetchByID(ctx context.Context, id int) (*model.Order, error) {
	order, err := o.api.GetOrder(ctx, id)
	if err != nil {
		apperrors.Log(err, "orders.fetchByID")
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.upsertLocked(*order)
	o.current = order
	return order, nil
}

// Create submits a checkout request. On success the confirmed order is
// prepended to the collection. Cart clearing is the caller's job; this
// container owns orders only.
func (o *Orders) Create(ctx context.Context, input model.CreateOrderInput) OrderResult {
	order, err := o.api.CreateOrder(ctx, input)
	if err != nil {
		msg := apperrors.Message(err, "Failed to place order")
		apperrors.Log(err, "orders.create")

		o.mu.Lock()
		o.errMsg = msg
		o.mu.Unlock()
		return OrderResult{Success: false, Error: msg}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.orders = append([]model.Order{*order}, o.withoutLocked(order.ID)...)
	o.errMsg = ""

	logger.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.TotalAmount,
	})
	return OrderResult{Success: true, Order: order}
}

// UpdateStatus requests a status transition. On success the matching
// cached order is patched in place; on failure state is untouched. No
// client-side validation of legal transitions; the server decides.
func (o *Orders) UpdateStatus(ctx context.Context, id int, status model.OrderStatus) OrderResult {
	updated, err := o.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		msg := apperrors.Message(err, "Failed to update order status")
		apperrors.Log(err, "orders.updateStatus")
		return OrderResult{Success: false, Error: msg}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.orders {
		if o.orders[i].ID == id {
			o.orders[i].Status = updated.Status
			o.orders[i].UpdatedAt = updated.UpdatedAt
			break
		}
	}
	if o.current != nil && o.current.ID == id {
		o.current.Status = updated.Status
		o.current.UpdatedAt = updated.UpdatedAt
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   string(updated.Status),
	})
	return OrderResult{Success: true, Order: updated}
}

// ByID returns the cached order with the given id, or nil.
func (o *Orders) ByID(id int) *model.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.orders {
		if o.orders[i].ID == id {
			order := o.orders[i]
			return &order
		}
	}
	return nil
}

// ByStatus returns the cached orders with the given status.
func (o *Orders) ByStatus(status model.OrderStatus) []model.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	var matched []model.Order
	for _, order := range o.orders {
		if order.Status == status {
			matched = append(matched, order)
		}
	}
	return matched
}

// TotalSpent sums TotalAmount over every cached order, regardless of
// status.
func (o *Orders) TotalSpent() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	total := 0.0
	for _, order := range o.orders {
		total += order.TotalAmount
	}
	return total
}

// Count returns the number of cached orders.
func (o *Orders) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.orders)
}

// All returns a copy of the cached collection.
func (o *Orders) All() []model.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	orders := make([]model.Order, len(o.orders))
	copy(orders, o.orders)
	return orders
}

// Current returns the currently viewed order, or nil.
func (o *Orders) Current() *model.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// IsLoading reports whether a fetch is in flight.
func (o *Orders) IsLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Err returns the last recorded display message, or "".
func (o *Orders) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// ClearErr drops the recorded error message.
func (o *Orders) ClearErr() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errMsg = ""
}

// ClearCurrent drops the currently viewed order.
func (o *Orders) ClearCurrent() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = nil
}

// Reset clears everything. Invoked on logout so the next user never
// sees this user's orders.
func (o *Orders) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.orders = nil
	o.current = nil
	o.loading = false
	o.errMsg = ""
}

// upsertLocked replaces the cached order with the same id or appends.
func (o *Orders) upsertLocked(order model.Order) {
	for i := range o.orders {
		if o.orders[i].ID == order.ID {
			o.orders[i] = order
			return
		}
	}
	o.orders = append(o.orders, order)
}

// withoutLocked returns the cached orders minus the given id.
func (o *Orders) withoutLocked(id int) []model.Order {
	var rest []model.Order
	for _, order := range o.orders {
		if order.ID != id {
			rest = append(rest, order)
		}
	}
	return rest
}
