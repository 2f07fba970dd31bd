package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/store"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type OrderService struct {
	store *store.Store
}

func NewOrderService(st *store.Store) *OrderService {
	return &OrderService{store: st}
}

// Create records an order from an item snapshot. The total is computed
// once here and never recomputed. A submission token makes retries
// idempotent: a token already on file returns the recorded order instead
// of appending a duplicate.
func (s *OrderService) Create(ctx context.Context, items []model.CartItem, info model.CustomerInfo, submissionToken string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	var order model.Order
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		orders := tx.Orders(ctx)
		if existing, ok := findBySubmissionToken(orders, submissionToken); ok {
			order = existing
			return nil
		}
		order = newOrder(items, info, submissionToken)
		return tx.SaveOrders(ctx, append(orders, order))
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// Checkout creates an order from the current cart and clears the cart in
// the same transaction, so an interrupted submission never leaves a
// recorded order with a still-populated cart. The token lookup runs before
// the empty-cart check: a retry after a successful checkout finds an empty
// cart but must still get the recorded order back.
func (s *OrderService) Checkout(ctx context.Context, info model.CustomerInfo, submissionToken string) (*model.Order, error) {
	var order model.Order
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		orders := tx.Orders(ctx)
		if existing, ok := findBySubmissionToken(orders, submissionToken); ok {
			order = existing
			return nil
		}
		cart := tx.Cart(ctx)
		if len(cart) == 0 {
			return ErrEmptyCart
		}
		order = newOrder(cart, info, submissionToken)
		if err := tx.SaveOrders(ctx, append(orders, order)); err != nil {
			return err
		}
		return tx.SaveCart(ctx, []model.CartItem{})
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, err
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return &order, nil
}

func findBySubmissionToken(orders []model.Order, token string) (model.Order, bool) {
	if token == "" {
		return model.Order{}, false
	}
	for _, o := range orders {
		if o.SubmissionToken == token {
			return o, true
		}
	}
	return model.Order{}, false
}

func newOrder(items []model.CartItem, info model.CustomerInfo, submissionToken string) model.Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return model.Order{
		ID:              uuid.New(),
		Number:          newOrderNumber(),
		SubmissionToken: submissionToken,
		Items:           append([]model.CartItem(nil), items...),
		TotalAmount:     total,
		CustomerInfo:    info,
		Status:          model.OrderStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
}

// List returns orders in insertion order; callers sort for display.
func (s *OrderService) List(ctx context.Context) []model.Order {
	return s.store.Orders(ctx)
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	for _, o := range s.store.Orders(ctx) {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, ErrOrderNotFound
}

// UpdateStatus moves an order along the transition graph. Cancellation is
// allowed from any non-terminal status; delivered and cancelled orders do
// not move again.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		orders := tx.Orders(ctx)
		for i := range orders {
			if orders[i].ID != id {
				continue
			}
			if !orders[i].Status.CanTransition(status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, orders[i].Status, status)
			}
			orders[i].Status = status
			return tx.SaveOrders(ctx, orders)
		}
		return ErrOrderNotFound
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrInvalidTransition) {
			return err
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// newOrderNumber builds the customer-facing reference the shop asks buyers
// to send over Viber. It is persisted with the order.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}
