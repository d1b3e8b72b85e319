package store

import (
	"context"
	"sync"

	"github.com/dotcomico/dotmarket-client/internal/apperrors"
	"github.com/dotcomico/dotmarket-client/internal/model"
)

// ProductAPI is the slice of the API client the product container needs.
type ProductAPI interface {
	ListProducts(ctx context.Context, filters *model.ProductFilters) (*model.ProductPage, error)
}

// Products caches the most recently fetched product page. Fetches
// replace the collection only on success; the sequence guard drops
// responses that are no longer the latest issued request.
type Products struct {
	api ProductAPI

	mu         sync.Mutex
	products   []model.Product
	pagination *model.Pagination
	loading    bool
	errMsg     string
	fetchSeq   uint64
}

// NewProducts creates an empty product container backed by api.
func NewProducts(api ProductAPI) *Products {
	return &Products{api: api}
}

// Fetch loads one page of products with the given filters.
func (p *Products) Fetch(ctx context.Context, filters *model.ProductFilters) error {
	p.mu.Lock()
	p.fetchSeq++
	seq := p.fetchSeq
	p.loading = true
	p.errMsg = ""
	p.mu.Unlock()

	page, err := p.api.ListProducts(ctx, filters)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.fetchSeq {
		return nil
	}
	p.loading = false

	if err != nil {
		p.errMsg = apperrors.Message(err, "Failed to fetch products")
		apperrors.Log(err, "products.fetch")
		return err
	}

	p.products = page.Products
	p.pagination = page.Pagination
	return nil
}

// ByID returns the cached product with the given id, or nil.
func (p *Products) ByID(id int) *model.Product {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.products {
		if p.products[i].ID == id {
			product := p.products[i]
			return &product
		}
	}
	return nil
}

// All returns a copy of the cached collection.
func (p *Products) All() []model.Product {
	p.mu.Lock()
	defer p.mu.Unlock()

	products := make([]model.Product, len(p.products))
	copy(products, p.products)
	return products
}

// LowStock returns the cached products below the restock threshold,
// for back-office alerts.
func (p *Products) LowStock() []model.Product {
	p.mu.Lock()
	defer p.mu.Unlock()

	var low []model.Product
	for _, product := range p.products {
		if product.LowStock() {
			low = append(low, product)
		}
	}
	return low
}

// OutOfStock returns the cached products with zero stock.
func (p *Products) OutOfStock() []model.Product {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []model.Product
	for _, product := range p.products {
		if product.OutOfStock() {
			out = append(out, product)
		}
	}
	return out
}

// Pagination returns the last page descriptor, or nil.
func (p *Products) Pagination() *model.Pagination {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pagination
}

// Count returns the number of cached products.
func (p *Products) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.products)
}

// IsLoading reports whether a fetch is in flight.
func (p *Products) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err returns the last recorded display message, or "".
func (p *Products) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}
