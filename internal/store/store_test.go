package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	st, err := Open(path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("", testLogger())
	assert.Error(t, err)
}

func TestProducts_SeededOnFirstAccess(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	products := st.Products(ctx)
	require.Len(t, products, 3)
	assert.Equal(t, model.CategoryNewborn, products[0].Category)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(450)))

	// Seed is persisted, so a second read returns the same records.
	again := st.Products(ctx)
	require.Len(t, again, 3)
	assert.Equal(t, products[0].ID, again[0].ID)
	assert.Equal(t, products[0].CreatedAt, again[0].CreatedAt)
}

func TestOrdersAndCart_DefaultEmpty(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	assert.Empty(t, st.Orders(ctx))
	assert.Empty(t, st.Cart(ctx))
}

func TestAdmin_SeededWithDefaultCredentials(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	admin := st.Admin(ctx)
	assert.Equal(t, "admin", admin.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	// Hash stays stable across reads.
	assert.Equal(t, admin.PasswordHash, st.Admin(ctx).PasswordHash)
}

func TestSession_DefaultInactive(t *testing.T) {
	st, _ := openTestStore(t)
	session := st.Session(context.Background())
	assert.False(t, session.Active(time.Now()))
}

func TestRoundTrip_AcrossReopen(t *testing.T) {
	st, path := openTestStore(t)
	ctx := context.Background()

	products := st.Products(ctx)
	cart := []model.CartItem{{
		Product:  products[0],
		Quantity: 2,
		Size:     "0-3m",
		Color:    "білий",
	}}
	require.NoError(t, st.SaveCart(ctx, cart))
	require.NoError(t, st.Close())

	reopened, err := Open(path, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	got := reopened.Cart(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, cart[0].Product.ID, got[0].Product.ID)
	assert.Equal(t, 2, got[0].Quantity)
	assert.True(t, cart[0].Product.Price.Equal(got[0].Product.Price))
}

func TestGetItem_CorruptBlobFallsBackToDefault(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	_, err := st.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		"orders", "{not json", time.Now().UnixMilli(),
	)
	require.NoError(t, err)

	assert.Empty(t, st.Orders(ctx))
}

func TestProducts_QueryFailureDoesNotReseed(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	// Persist a catalog that differs from the seed.
	custom := []model.Product{SampleProducts()[0]}
	custom[0].Name = "Єдиний товар"
	require.NoError(t, st.SaveProducts(ctx, custom))

	// A failed read must fall back to the defaults for this call only,
	// not overwrite the stored catalog with the seed.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	during := st.Products(cancelled)
	assert.Len(t, during, 3)

	after := st.Products(ctx)
	require.Len(t, after, 1)
	assert.Equal(t, "Єдиний товар", after[0].Name)
}

func TestGetItem_QueryFailureReported(t *testing.T) {
	st, _ := openTestStore(t)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	var orders []model.Order
	found, err := st.getItem(cancelled, "orders", &orders)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := st.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.SaveOrders(ctx, []model.Order{{ID: uuid.New()}}))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, st.Orders(ctx))
}

func TestUpdate_CommitsMultipleCollections(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveCart(ctx, []model.CartItem{{Quantity: 1}}))
	err := st.Update(ctx, func(tx *Tx) error {
		if err := tx.SaveOrders(ctx, []model.Order{{ID: uuid.New()}}); err != nil {
			return err
		}
		return tx.SaveCart(ctx, []model.CartItem{})
	})
	require.NoError(t, err)
	assert.Len(t, st.Orders(ctx), 1)
	assert.Empty(t, st.Cart(ctx))
}
