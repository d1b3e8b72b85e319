package model

// CartItem pairs a cached product copy with the quantity the user
// intends to buy. Quantity is always >= 1; an item that would drop to
// zero is removed from the cart instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the cached price times quantity. Display only; the
// server reprices at order time.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
