package hooks

import (
	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/internal/store"
)

// Access answers role questions for route guarding.
type Access struct {
	session *store.Session
}

// NewAccess wraps the session.
func NewAccess(session *store.Session) *Access {
	return &Access{session: session}
}

// IsAdmin reports whether the current user is an admin.
func (a *Access) IsAdmin() bool {
	return a.session.IsAdmin()
}

// IsManager reports whether the current user is a manager.
func (a *Access) IsManager() bool {
	return a.session.IsManager()
}

// IsStaff reports whether the current user may enter the back office.
func (a *Access) IsStaff() bool {
	return a.session.HasRole(model.RoleAdmin, model.RoleManager)
}

// HasAccess reports whether the current user holds any of the required
// roles.
func (a *Access) HasAccess(roles ...model.Role) bool {
	return a.session.HasRole(roles...)
}

// DashboardStats are the back-office headline figures.
type DashboardStats struct {
	TotalRevenue  float64
	TotalOrders   int
	LowStockCount int
	TotalProducts int
}

// RecentOrder is one row of the dashboard's recent-orders table.
type RecentOrder struct {
	ID       int
	Customer string
	Amount   float64
	Status   model.DisplayStatus
	Date     string
}

// Dashboard derives back-office views from the cached orders and
// products. All reads are pure; loading the caches is the caller's job.
type Dashboard struct {
	orders   *store.Orders
	products *store.Products
}

// NewDashboard wraps the order and product containers.
func NewDashboard(orders *store.Orders, products *store.Products) *Dashboard {
	return &Dashboard{orders: orders, products: products}
}

// Stats computes the headline figures.
func (d *Dashboard) Stats() DashboardStats {
	return DashboardStats{
		TotalRevenue:  d.orders.TotalSpent(),
		TotalOrders:   d.orders.Count(),
		LowStockCount: len(d.products.LowStock()),
		TotalProducts: d.products.Count(),
	}
}

// RecentOrders returns up to limit of the most recent cached orders,
// newest first, shaped for the dashboard table.
func (d *Dashboard) RecentOrders(limit int) []RecentOrder {
	orders := d.orders.All()

	// Cached order lists arrive newest-first from the server; a fresh
	// checkout is prepended, preserving that.
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}

	rows := make([]RecentOrder, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, RecentOrder{
			ID:       order.ID,
			Customer: order.CustomerName(),
			Amount:   order.TotalAmount,
			Status:   order.Status.Display(),
			Date:     order.CreatedAt.Format("2006-01-02"),
		})
	}
	return rows
}

// LowStockAlerts returns the cached products needing restock.
func (d *Dashboard) LowStockAlerts() []model.Product {
	return d.products.LowStock()
}
