package store

import (
	"sync"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
)

// Store holds the latest cart snapshot as fetched from the server and is
// the single source of truth for the badge count. Only resolved API
// responses write to it; overlapping writers race and the last one wins.
type Store struct {
	mu   sync.RWMutex
	cart *domain.Cart
}

func New() *Store {
	return &Store{}
}

// Replace atomically swaps the held snapshot. Readers never observe a
// partially updated cart.
func (s *Store) Replace(cart *domain.Cart) {
	if cart == nil {
		return
	}
	cp := *cart
	cp.Items = append([]domain.CartItem(nil), cart.Items...)

	s.mu.Lock()
	s.cart = &cp
	s.mu.Unlock()
}

// Reset drops the snapshot to an empty cart with zero totals. Used after a
// confirmed clear.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cart = &domain.Cart{}
	s.mu.Unlock()
}

// Snapshot returns a copy of the held cart. The second return is false when
// no snapshot has ever loaded.
func (s *Store) Snapshot() (domain.Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cart == nil {
		return domain.Cart{}, false
	}
	cp := *s.cart
	cp.Items = append([]domain.CartItem(nil), s.cart.Items...)
	return cp, true
}

// BadgeCount is the total item quantity for the cart icon, 0 before the
// first successful fetch.
func (s *Store) BadgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cart == nil {
		return 0
	}
	return s.cart.TotalItems
}
