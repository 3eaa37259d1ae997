// Package cart maintains the shopping cart: line items keyed by product,
// with subtotal, tax, shipping and total recomputed after every change.
package cart

import (
	"errors"
	"fmt"

	"github.com/cartusagri/storefront/internal/config"
	"github.com/cartusagri/storefront/internal/models"
)

// ErrInvalidQuantity is returned by Add when the requested quantity is not
// positive.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Storage persists the cart between sessions.
type Storage interface {
	LoadCart() (*models.Cart, bool, error)
	SaveCart(*models.Cart) error
}

// Store holds the current cart and keeps its totals consistent.
type Store struct {
	storage Storage
	pricing config.PricingConfig
	cart    models.Cart
}

// New restores any persisted cart and recomputes its totals, so stale
// totals in storage never survive a restart.
func New(storage Storage, pricing config.PricingConfig) (*Store, error) {
	s := &Store{storage: storage, pricing: pricing}
	cart, ok, err := storage.LoadCart()
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if ok {
		s.cart = *cart
	}
	s.recompute()
	return s, nil
}

// Cart returns a copy of the current cart. Mutating the returned value
// does not affect the store.
func (s *Store) Cart() models.Cart {
	out := s.cart
	out.Items = make([]models.CartItem, len(s.cart.Items))
	copy(out.Items, s.cart.Items)
	return out
}

// Count returns the total number of units across all line items.
func (s *Store) Count() int {
	var n int
	for _, it := range s.cart.Items {
		n += it.Quantity
	}
	return n
}

// Add puts quantity units of product in the cart. If the product already
// has a line item the quantities merge.
func (s *Store) Add(product models.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("Add: %w", ErrInvalidQuantity)
	}
	merged := false
	for i, it := range s.cart.Items {
		if it.Product.ID == product.ID {
			s.cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Items = append(s.cart.Items, models.CartItem{Product: product, Quantity: quantity})
	}
	return s.commit("Add")
}

// UpdateQuantity sets the quantity of the product's line item. A quantity
// of zero or less removes the line item. Unknown products are ignored.
func (s *Store) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(productID)
	}
	for i, it := range s.cart.Items {
		if it.Product.ID == productID {
			s.cart.Items[i].Quantity = quantity
			return s.commit("UpdateQuantity")
		}
	}
	return nil
}

// Remove drops the product's line item. Removing a product that is not in
// the cart is a no-op.
func (s *Store) Remove(productID string) error {
	for i, it := range s.cart.Items {
		if it.Product.ID == productID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			return s.commit("Remove")
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.cart.Items = nil
	return s.commit("Clear")
}

func (s *Store) commit(op string) error {
	s.recompute()
	if err := s.storage.SaveCart(&s.cart); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// recompute derives subtotal, tax, shipping and total from the line items.
// Shipping is waived once the subtotal passes the free-shipping threshold,
// and an empty cart ships for free.
func (s *Store) recompute() {
	var subtotal float64
	for _, it := range s.cart.Items {
		subtotal += it.Product.Price * float64(it.Quantity)
	}
	s.cart.Subtotal = subtotal
	s.cart.Tax = subtotal * s.pricing.TaxRate
	switch {
	case len(s.cart.Items) == 0, subtotal > s.pricing.FreeShippingOver:
		s.cart.Shipping = 0
	default:
		s.cart.Shipping = s.pricing.ShippingFee
	}
	s.cart.Total = s.cart.Subtotal + s.cart.Tax + s.cart.Shipping
}
