package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/store"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrSizeNotOffered  = errors.New("size not offered for this product")
	ErrColorNotOffered = errors.New("color not offered for this product")
)

// CartService manages the single cart collection. Entries are deduplicated
// by the (product, size, color) identity key; quantities merge on add.
type CartService struct {
	store *store.Store

	mu          sync.Mutex
	subscribers []func()
}

func NewCartService(st *store.Store) *CartService {
	return &CartService{store: st}
}

// Subscribe registers fn to run after every cart mutation, so concurrently
// rendered views (header badge, cart page) can refresh.
func (s *CartService) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// NotifyChanged broadcasts a cart change. Mutating methods call it
// themselves; callers that clear the cart through a checkout transaction
// invoke it directly.
func (s *CartService) NotifyChanged() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *CartService) Get(ctx context.Context) []model.CartItem {
	return s.store.Cart(ctx)
}

// Add upserts by identity key: an existing entry has its quantity
// incremented, otherwise the item is appended. Size and color must be
// offered by the product snapshot at add time; they are not re-validated
// against the catalog later.
func (s *CartService) Add(ctx context.Context, item model.CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !contains(item.Product.Sizes, item.Size) {
		return fmt.Errorf("%w: %q", ErrSizeNotOffered, item.Size)
	}
	if !contains(item.Product.Colors, item.Color) {
		return fmt.Errorf("%w: %q", ErrColorNotOffered, item.Color)
	}

	err := s.store.Update(ctx, func(tx *store.Tx) error {
		cart := tx.Cart(ctx)
		for i := range cart {
			if cart[i].SameKey(item.Product.ID, item.Size, item.Color) {
				cart[i].Quantity += item.Quantity
				return tx.SaveCart(ctx, cart)
			}
		}
		return tx.SaveCart(ctx, append(cart, item))
	})
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	s.NotifyChanged()
	return nil
}

// UpdateQuantity sets the quantity for the identified entry. A quantity of
// zero or less removes the entry; an absent entry is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, productID uuid.UUID, size, color string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID, size, color)
	}
	changed := false
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		cart := tx.Cart(ctx)
		for i := range cart {
			if cart[i].SameKey(productID, size, color) {
				cart[i].Quantity = quantity
				changed = true
				return tx.SaveCart(ctx, cart)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}
	if changed {
		s.NotifyChanged()
	}
	return nil
}

// Remove deletes the identified entry; absent entries are a no-op.
func (s *CartService) Remove(ctx context.Context, productID uuid.UUID, size, color string) error {
	changed := false
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		cart := tx.Cart(ctx)
		kept := cart[:0]
		for _, item := range cart {
			if !item.SameKey(productID, size, color) {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(cart) {
			return nil
		}
		changed = true
		return tx.SaveCart(ctx, kept)
	})
	if err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	if changed {
		s.NotifyChanged()
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context) error {
	if err := s.store.SaveCart(ctx, []model.CartItem{}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.NotifyChanged()
	return nil
}

// Count is the total number of pieces across all entries.
func (s *CartService) Count(ctx context.Context) int {
	count := 0
	for _, item := range s.store.Cart(ctx) {
		count += item.Quantity
	}
	return count
}

// Total sums snapshot price times quantity across all entries.
func (s *CartService) Total(ctx context.Context) decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.store.Cart(ctx) {
		total = total.Add(item.Subtotal())
	}
	return total
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
