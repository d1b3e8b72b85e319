package hooks

import (
	"github.com/dotcomico/dotmarket-client/internal/store"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// Logout tears down every container holding user-scoped state. Each
// container is cleared through its own public API; no state is shared
// by reference across containers.
type Logout struct {
	session *store.Session
	cart    *store.Cart
	orders  *store.Orders
}

// NewLogout wires the containers that must be reset together.
func NewLogout(session *store.Session, cart *store.Cart, orders *store.Orders) *Logout {
	return &Logout{session: session, cart: cart, orders: orders}
}

// Do clears the session, the cart (and its mirror), and the cached
// orders so nothing leaks to the next user.
func (l *Logout) Do() {
	l.session.Logout()
	l.cart.Clear()
	l.orders.Reset()
	logger.Info("Logged out, user state cleared")
}
