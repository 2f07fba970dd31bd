package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusPending, OrderStatus("lost"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{
		Product:  Product{Price: decimal.NewFromInt(450)},
		Quantity: 3,
	}
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(1350)))
}

func TestSession_Active(t *testing.T) {
	now := time.Now()
	assert.False(t, Session{}.Active(now))
	assert.False(t, Session{Token: "t", ExpiresAt: now.Add(-time.Minute)}.Active(now))
	assert.True(t, Session{Token: "t", ExpiresAt: now.Add(time.Minute)}.Active(now))
}

func TestVocabularies(t *testing.T) {
	assert.True(t, KnownSize("0-3m"))
	assert.False(t, KnownSize("XXXL"))
	assert.True(t, KnownColor("синій"))
	assert.False(t, KnownColor("золотий"))
	assert.True(t, CategoryShoes.Valid())
	assert.False(t, Category("vintage").Valid())
}
