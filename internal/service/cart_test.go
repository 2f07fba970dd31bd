package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/store"
)

func sampleItem(t *testing.T, st *store.Store, quantity int) model.CartItem {
	t.Helper()
	products := st.Products(context.Background())
	require.NotEmpty(t, products)
	return model.CartItem{
		Product:  products[0],
		Quantity: quantity,
		Size:     products[0].Sizes[0],
		Color:    products[0].Colors[0],
	}
}

func TestCartService_Add_MergesByIdentityKey(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 2)
	require.NoError(t, svc.Add(ctx, item))
	require.NoError(t, svc.Add(ctx, item))

	cart := svc.Get(ctx)
	require.Len(t, cart, 1)
	assert.Equal(t, 4, cart[0].Quantity)
}

func TestCartService_Add_DistinctKeysStaySeparate(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 1)
	require.NoError(t, svc.Add(ctx, item))

	other := item
	other.Size = item.Product.Sizes[1]
	require.NoError(t, svc.Add(ctx, other))

	assert.Len(t, svc.Get(ctx), 2)
}

func TestCartService_Add_Validation(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 0)
	assert.ErrorIs(t, svc.Add(ctx, item), ErrInvalidQuantity)

	item = sampleItem(t, st, 1)
	item.Size = "XXXL"
	assert.ErrorIs(t, svc.Add(ctx, item), ErrSizeNotOffered)

	item = sampleItem(t, st, 1)
	item.Color = "золотий"
	assert.ErrorIs(t, svc.Add(ctx, item), ErrColorNotOffered)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 2)
	require.NoError(t, svc.Add(ctx, item))

	require.NoError(t, svc.UpdateQuantity(ctx, item.Product.ID, item.Size, item.Color, 5))
	cart := svc.Get(ctx)
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestCartService_UpdateQuantity_ZeroRemoves(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 2)
	require.NoError(t, svc.Add(ctx, item))

	require.NoError(t, svc.UpdateQuantity(ctx, item.Product.ID, item.Size, item.Color, 0))
	assert.Empty(t, svc.Get(ctx))
}

func TestCartService_UpdateQuantity_AbsentIsNoop(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 2)
	require.NoError(t, svc.Add(ctx, item))

	require.NoError(t, svc.UpdateQuantity(ctx, uuid.New(), item.Size, item.Color, 7))
	cart := svc.Get(ctx)
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestCartService_Remove(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 1)
	require.NoError(t, svc.Add(ctx, item))
	require.NoError(t, svc.Remove(ctx, item.Product.ID, item.Size, item.Color))
	assert.Empty(t, svc.Get(ctx))

	// Removing again is a no-op.
	require.NoError(t, svc.Remove(ctx, item.Product.ID, item.Size, item.Color))
}

func TestCartService_Clear(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, sampleItem(t, st, 3)))
	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, svc.Get(ctx))
	assert.Zero(t, svc.Count(ctx))
}

func TestCartService_CountAndTotal(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	products := st.Products(ctx)
	require.GreaterOrEqual(t, len(products), 2)

	first := model.CartItem{Product: products[0], Quantity: 2, Size: products[0].Sizes[0], Color: products[0].Colors[0]}
	second := model.CartItem{Product: products[1], Quantity: 1, Size: products[1].Sizes[0], Color: products[1].Colors[0]}
	require.NoError(t, svc.Add(ctx, first))
	require.NoError(t, svc.Add(ctx, second))

	assert.Equal(t, 3, svc.Count(ctx))
	want := products[0].Price.Mul(decimal.NewFromInt(2)).Add(products[1].Price)
	assert.True(t, svc.Total(ctx).Equal(want))
}

func TestCartService_NotifiesSubscribers(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	changes := 0
	svc.Subscribe(func() { changes++ })

	require.NoError(t, svc.Add(ctx, sampleItem(t, st, 1)))
	require.NoError(t, svc.Clear(ctx))
	assert.Equal(t, 2, changes)
}

func TestCartService_NoopMutationsDoNotNotify(t *testing.T) {
	st := newTestStore(t)
	svc := NewCartService(st)
	ctx := context.Background()

	item := sampleItem(t, st, 2)
	require.NoError(t, svc.Add(ctx, item))

	changes := 0
	svc.Subscribe(func() { changes++ })

	require.NoError(t, svc.UpdateQuantity(ctx, uuid.New(), item.Size, item.Color, 7))
	require.NoError(t, svc.Remove(ctx, uuid.New(), item.Size, item.Color))
	assert.Zero(t, changes)

	require.NoError(t, svc.UpdateQuantity(ctx, item.Product.ID, item.Size, item.Color, 3))
	assert.Equal(t, 1, changes)
}
