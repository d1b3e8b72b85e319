// Package hooks composes the state containers and the API into the
// page-level operations the view layer invokes: checkout, order
// history, access gates, dashboard stats, logout.
package hooks

import (
	"context"

	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/internal/store"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// Checkout turns the live cart into an order.
type Checkout struct {
	cart   *store.Cart
	orders *store.Orders
}

// NewCheckout wires the cart and order containers together.
func NewCheckout(cart *store.Cart, orders *store.Orders) *Checkout {
	return &Checkout{cart: cart, orders: orders}
}

// PlaceOrder builds an order request from the cart's current items and
// the given address. An empty cart fails without touching the network.
// The cart is cleared only after the server confirms the order; on any
// failure the cart keeps its items so the user can retry.
func (c *Checkout) PlaceOrder(ctx context.Context, address string) store.OrderResult {
	items := c.cart.Items()
	if len(items) == 0 {
		return store.OrderResult{Success: false, Error: "Cart is empty"}
	}

	// Only product id and quantity travel; the server prices the order.
	input := model.CreateOrderInput{Address: address}
	for _, item := range items {
		input.Items = append(input.Items, model.OrderItemInput{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}

	result := c.orders.Create(ctx, input)
	if result.Success {
		c.cart.Clear()
		logger.Info("Checkout complete, cart cleared", map[string]interface{}{
			"order_id": result.Order.ID,
		})
	}
	return result
}
