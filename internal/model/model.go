package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Images        []string        `json:"images"`
	Category      Category        `json:"category"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	InStock       bool            `json:"inStock"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CartItem embeds a snapshot of the product taken when the item was added.
// The snapshot is never re-synced with the catalog afterwards.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
}

// Subtotal is the snapshot price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameKey reports whether the item matches the (product, size, color)
// identity key used to deduplicate cart entries.
func (i CartItem) SameKey(productID uuid.UUID, size, color string) bool {
	return i.Product.ID == productID && i.Size == size && i.Color == color
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	SubmissionToken string          `json:"submissionToken"`
	Items           []CartItem      `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CustomerInfo    CustomerInfo    `json:"customerInfo"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// orderTransitions holds the forward edge per status; cancellation is
// allowed from any non-terminal status and handled in CanTransition.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderTransitions[s] == next
}

// AdminUser is the single operator account. PasswordHash is a bcrypt hash;
// the plaintext is never persisted.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
}

// Session is the persisted admin session. Token is the issued JWT; a token
// that does not match the persisted one is rejected, so logout revokes.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Active(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}

type Category string

const (
	CategoryNewborn     Category = "newborn"
	CategoryBoys        Category = "boys"
	CategoryGirls       Category = "girls"
	CategoryToddlers    Category = "toddlers"
	CategoryAccessories Category = "accessories"
	CategoryShoes       Category = "shoes"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryNewborn, CategoryBoys, CategoryGirls,
		CategoryToddlers, CategoryAccessories, CategoryShoes:
		return true
	}
	return false
}

// Sizes is the fixed size vocabulary products may offer.
var Sizes = []string{
	"0-3m", "3-6m", "6-12m", "1-2y", "2-3y", "3-4y", "4-5y", "5-6y",
	"XS", "S", "M", "L", "XL",
}

// Colors is the fixed color vocabulary, in the shop's catalog language.
var Colors = []string{
	"білий", "чорний", "сірий", "синій", "рожевий", "жовтий", "зелений",
	"червоний", "фіолетовий", "помаранчевий",
}

func KnownSize(s string) bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

func KnownColor(c string) bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}
