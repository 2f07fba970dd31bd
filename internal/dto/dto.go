package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
)

// --- Admin session ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// --- Product ---

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Images        []string        `json:"images"`
	Category      model.Category  `json:"category" binding:"required"`
	Sizes         []string        `json:"sizes" binding:"required,min=1"`
	Colors        []string        `json:"colors" binding:"required,min=1"`
	InStock       bool            `json:"in_stock"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Images        []string         `json:"images"`
	Category      *model.Category  `json:"category"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	InStock       *bool            `json:"in_stock"`
	StockQuantity *int             `json:"stock_quantity"`
}

type ListProductsRequest struct {
	Category model.Category `form:"category"`
}

type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Images        []string        `json:"images"`
	Category      model.Category  `json:"category"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	InStock       bool            `json:"in_stock"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Size      string    `json:"size" binding:"required"`
	Color     string    `json:"color" binding:"required"`
}

type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size" binding:"required"`
	Color     string    `json:"color" binding:"required"`
}

type CartItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Count int                `json:"count"`
	Total decimal.Decimal    `json:"total"`
}

// --- Checkout / orders ---

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	// SubmissionToken is generated by the client once per submission
	// attempt; retries with the same token do not duplicate the order.
	SubmissionToken string `json:"submission_token" binding:"required"`
}

type CheckoutResponse struct {
	OrderNumber  string          `json:"order_number"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ContactPhone string          `json:"contact_phone"`
	Instructions string          `json:"instructions"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

type OrderResponse struct {
	ID           uuid.UUID          `json:"id"`
	Number       string             `json:"number"`
	Items        []CartItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	CustomerInfo model.CustomerInfo `json:"customer_info"`
	Status       model.OrderStatus  `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// --- Shop ---

type ShopInfoResponse struct {
	Name         string `json:"name"`
	ContactPhone string `json:"contact_phone"`
	ViberLink    string `json:"viber_link"`
	TelegramLink string `json:"telegram_link"`
}
