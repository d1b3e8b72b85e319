package model

import "time"

// LowStockThreshold is the fixed stock level below which the back
// office raises a restock alert.
const LowStockThreshold = 10

// Product mirrors the server's product resource. Price and stock are
// server truth; the client never recomputes them.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image"`
	CategoryID  int       `json:"categoryId"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OutOfStock reports whether the product cannot currently be ordered.
func (p Product) OutOfStock() bool {
	return p.Stock == 0
}

// LowStock reports whether the product is below the restock threshold.
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// ProductFilters are the query parameters the product listing accepts.
// Zero values are omitted from the request.
type ProductFilters struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}

// Pagination describes one page of a server-side listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ProductPage is the shape of the product listing response.
type ProductPage struct {
	Products   []Product   `json:"products"`
	Pagination *Pagination `json:"pagination"`
}
