package api

import (
	"context"
	"fmt"

	"github.com/dotcomico/dotmarket-client/internal/model"
)

// ListOrders fetches every order (admin/manager view).
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.get(ctx, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListMyOrders fetches the authenticated user's orders.
// The path is spelled "privet" because that is what the server routes.
func (c *Client) ListMyOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.get(ctx, "/orders/privet", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, id int) (*model.Order, error) {
	var order model.Order
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder submits a checkout request. The server assigns the id,
// prices every line, and returns the confirmed order.
func (c *Client) CreateOrder(ctx context.Context, input model.CreateOrderInput) (*model.Order, error) {
	var order model.Order
	if err := c.postJSON(ctx, "/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus requests a status transition (admin/manager only).
// Legal transitions are the server's call; the client forwards as-is.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status model.OrderStatus) (*model.Order, error) {
	payload := map[string]model.OrderStatus{"status": status}
	var order model.Order
	if err := c.patchJSON(ctx, fmt.Sprintf("/orders/%d/status", id), payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
