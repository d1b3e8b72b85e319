package store

import (
	"sync"

	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/internal/storage"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// CartStorageKey is the fixed key the cart mirror lives under.
const CartStorageKey = "cart-storage"

// Cart is the authoritative client-side shopping cart. Items keep
// insertion order and are unique by product id; every mutation rewrites
// the persisted mirror synchronously so a restart restores the same
// cart. The cart never touches the network.
type Cart struct {
	mu     sync.Mutex
	items  []model.CartItem
	mirror *storage.Store
}

// NewCart restores the cart from its persisted mirror, starting empty
// when no mirror exists or it cannot be read.
func NewCart(mirror *storage.Store) *Cart {
	c := &Cart{mirror: mirror}

	if mirror != nil {
		var items []model.CartItem
		found, err := mirror.Get(CartStorageKey, &items)
		if err != nil {
			logger.Warn("Discarding unreadable cart mirror", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found {
			c.items = items
		}
	}
	return c
}

// AddItem appends product with the given quantity, or increments the
// existing line when the product is already in the cart. quantity <= 0
// defaults to 1. No stock cap is enforced here; that is a view-layer
// affordance.
func (c *Cart) AddItem(product model.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			c.persist()
			return
		}
	}

	c.items = append(c.items, model.CartItem{Product: product, Quantity: quantity})
	c.persist()
}

// RemoveItem deletes the line for productID; no-op when absent.
func (c *Cart) RemoveItem(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID int) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// UpdateQuantity sets the line's quantity to an absolute value.
// quantity <= 0 removes the line. No-op when the product is not in the
// cart.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear empties the cart and erases the persisted mirror.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	if c.mirror != nil {
		if err := c.mirror.Remove(CartStorageKey); err != nil {
			logger.Warn("Failed to erase cart mirror", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// Items returns a copy of the cart lines in display order.
func (c *Cart) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]model.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// TotalItems sums every line's quantity.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price x quantity over every line, using the cached
// product prices.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemQuantity returns the quantity for productID, or 0 when absent.
func (c *Cart) ItemQuantity(productID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

// persist rewrites the mirror. Callers hold c.mu.
func (c *Cart) persist() {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.Set(CartStorageKey, c.items); err != nil {
		logger.Error("Failed to persist cart mirror", err, map[string]interface{}{
			"items": len(c.items),
		})
	}
}
