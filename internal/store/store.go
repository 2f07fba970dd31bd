// Package store persists the shop's collections as JSON blobs in a local
// SQLite file, one blob per logical collection. It is the only component
// that touches the persistence medium; services hold a *Store handle.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
)

// Collection keys. These are the persisted blob names; changing one
// orphans existing data.
const (
	keyProducts = "products"
	keyOrders   = "orders"
	keyCart     = "cart"
	keyAdmin    = "admin"
	keySession  = "adminSession"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// kv implements the typed collection accessors over either the database
// handle or an open transaction.
type kv struct {
	q   querier
	log *slog.Logger
}

// Store owns all persisted collections.
type Store struct {
	kv
	db *sql.DB
}

// Tx exposes the same collection accessors inside a single transaction.
type Tx struct {
	kv
}

// Open opens (creating if needed) the shop database at path.
func Open(path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure kv table: %w", err)
	}
	return &Store{kv: kv{q: db, log: log}, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Update runs fn inside a single transaction so that multi-collection
// writes (order append + cart clear) land atomically or not at all.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Tx{kv: kv{q: sqlTx, log: s.log}}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// getItem loads one collection blob into dst. A missing row or a blob
// that no longer unmarshals report found=false with a nil error, so
// callers may fall back to the collection default and reseed. A failed
// query also reports found=false but with the error, so callers must not
// persist the default over data that may still be intact. Neither case is
// surfaced to service callers; corruption and query failures are logged.
func (k kv) getItem(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	err := k.q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		k.log.Error("read collection", "collection", key, "error", err)
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		k.log.Warn("corrupt collection, falling back to default", "collection", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (k kv) setItem(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = k.q.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, raw, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Products returns the catalog, seeding and persisting the sample
// products on first access.
func (k kv) Products(ctx context.Context) []model.Product {
	var products []model.Product
	found, readErr := k.getItem(ctx, keyProducts, &products)
	if found {
		return products
	}
	products = SampleProducts()
	if readErr == nil {
		if err := k.setItem(ctx, keyProducts, products); err != nil {
			k.log.Error("seed products", "error", err)
		}
	}
	return products
}

func (k kv) SaveProducts(ctx context.Context, products []model.Product) error {
	return k.setItem(ctx, keyProducts, products)
}

func (k kv) Orders(ctx context.Context) []model.Order {
	var orders []model.Order
	k.getItem(ctx, keyOrders, &orders)
	return orders
}

func (k kv) SaveOrders(ctx context.Context, orders []model.Order) error {
	return k.setItem(ctx, keyOrders, orders)
}

func (k kv) Cart(ctx context.Context) []model.CartItem {
	var cart []model.CartItem
	k.getItem(ctx, keyCart, &cart)
	return cart
}

func (k kv) SaveCart(ctx context.Context, cart []model.CartItem) error {
	return k.setItem(ctx, keyCart, cart)
}

// Admin returns the operator account, seeding and persisting the default
// one (username "admin") on first access.
func (k kv) Admin(ctx context.Context) model.AdminUser {
	var admin model.AdminUser
	found, readErr := k.getItem(ctx, keyAdmin, &admin)
	if found {
		return admin
	}
	admin = defaultAdmin()
	if readErr == nil {
		if err := k.setItem(ctx, keyAdmin, admin); err != nil {
			k.log.Error("seed admin", "error", err)
		}
	}
	return admin
}

func (k kv) SaveAdmin(ctx context.Context, admin model.AdminUser) error {
	return k.setItem(ctx, keyAdmin, admin)
}

func (k kv) Session(ctx context.Context) model.Session {
	var session model.Session
	k.getItem(ctx, keySession, &session)
	return session
}

func (k kv) SaveSession(ctx context.Context, session model.Session) error {
	return k.setItem(ctx, keySession, session)
}

func defaultAdmin() model.AdminUser {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		// Only reachable with an out-of-range cost.
		panic(fmt.Sprintf("hash default admin password: %v", err))
	}
	return model.AdminUser{
		ID:           uuid.MustParse("5f0a3e6e-0000-4000-8000-000000000001"),
		Username:     defaultAdminUsername,
		PasswordHash: string(hash),
	}
}

// SampleProducts is the catalog a fresh shop starts with. IDs are fixed so
// cart snapshots taken before the first catalog write stay resolvable.
func SampleProducts() []model.Product {
	now := time.Now().UTC()
	placeholder := []string{"/api/placeholder/400/400"}
	return []model.Product{
		{
			ID:            uuid.MustParse("8c9e4a10-0000-4000-8000-000000000001"),
			Name:          "Милий комбінезон для новонароджених",
			Description:   "Мʼякий та зручний комбінезон з натуральної бавовни для найменших",
			Price:         decimal.NewFromInt(450),
			Images:        placeholder,
			Category:      model.CategoryNewborn,
			Sizes:         []string{"0-3m", "3-6m", "6-12m"},
			Colors:        []string{"білий", "рожевий", "синій"},
			InStock:       true,
			StockQuantity: 15,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.MustParse("8c9e4a10-0000-4000-8000-000000000002"),
			Name:          "Світшот для хлопчиків",
			Description:   "Стильний світшот з капюшоном для активних хлопчиків",
			Price:         decimal.NewFromInt(650),
			Images:        placeholder,
			Category:      model.CategoryBoys,
			Sizes:         []string{"2-3y", "3-4y", "4-5y", "5-6y"},
			Colors:        []string{"синій", "сірий", "зелений"},
			InStock:       true,
			StockQuantity: 20,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.MustParse("8c9e4a10-0000-4000-8000-000000000003"),
			Name:          "Плаття для дівчинки",
			Description:   "Красиве святкове плаття з мереживом",
			Price:         decimal.NewFromInt(850),
			Images:        placeholder,
			Category:      model.CategoryGirls,
			Sizes:         []string{"2-3y", "3-4y", "4-5y", "5-6y"},
			Colors:        []string{"рожевий", "білий", "фіолетовий"},
			InStock:       true,
			StockQuantity: 12,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
