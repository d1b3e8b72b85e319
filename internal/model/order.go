package model

import "time"

// OrderStatus is the server-side lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status the server accepts, in the order the
// back office presents them.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusPaid,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// DisplayStatus is the user-facing label family. The server speaks
// pending/shipped/paid/cancelled; the UI shows
// pending/processing/completed/cancelled.
type DisplayStatus string

const (
	DisplayCompleted  DisplayStatus = "completed"
	DisplayProcessing DisplayStatus = "processing"
	DisplayPending    DisplayStatus = "pending"
	DisplayCancelled  DisplayStatus = "cancelled"
)

// Display maps the wire status to its presentation status.
func (s OrderStatus) Display() DisplayStatus {
	switch s {
	case OrderStatusPaid:
		return DisplayCompleted
	case OrderStatusShipped:
		return DisplayProcessing
	case OrderStatusCancelled:
		return DisplayCancelled
	default:
		return DisplayPending
	}
}

// Label returns the capitalized display label.
func (s OrderStatus) Label() string {
	d := string(s.Display())
	if d == "" {
		return ""
	}
	return string(d[0]-'a'+'A') + d[1:]
}

// OrderItem is one line of an order: a product reference frozen at the
// quantity and unit price the server recorded at checkout.
type OrderItem struct {
	ID        int      `json:"id"`
	OrderID   int      `json:"orderId"`
	ProductID int      `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// Order mirrors the server's order resource. Depending on the endpoint
// the server includes either line items ("OrderItems") or a bare
// product list ("Products").
type Order struct {
	ID          int         `json:"id"`
	UserID      int         `json:"userId"`
	User        *User       `json:"user,omitempty"`
	Address     string      `json:"address"`
	Items       []OrderItem `json:"OrderItems,omitempty"`
	Products    []Product   `json:"Products,omitempty"`
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ItemCount sums line-item quantities, falling back to the product list
// when the server returned the bare association.
func (o Order) ItemCount() int {
	if len(o.Items) > 0 {
		count := 0
		for _, item := range o.Items {
			count += item.Quantity
		}
		return count
	}
	return len(o.Products)
}

// CustomerName returns the buyer's username when the server included it.
func (o Order) CustomerName() string {
	if o.User != nil {
		return o.User.Username
	}
	return ""
}

// OrderItemInput is one line of a checkout request. Only the product id
// and quantity travel to the server; pricing at order time is server
// truth.
type OrderItemInput struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CreateOrderInput is the checkout request body.
type CreateOrderInput struct {
	Items   []OrderItemInput `json:"items"`
	Address string           `json:"address"`
}
