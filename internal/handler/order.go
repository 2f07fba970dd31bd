package handler

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/config"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/dto"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
	cart   *service.CartService
	shop   config.ShopConfig
}

func NewOrderHandler(orders *service.OrderService, cart *service.CartService, shop config.ShopConfig) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart, shop: shop}
}

// Checkout turns the cart into an order and hands back the order number
// the customer is asked to send over Viber. Order and cart-clear land in
// one transaction; the submission token deduplicates retries.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info := model.CustomerInfo{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
		Email: req.CustomerEmail,
	}
	order, err := h.orders.Checkout(c.Request.Context(), info, req.SubmissionToken)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.cart.NotifyChanged()

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		OrderNumber:  order.Number,
		TotalAmount:  order.TotalAmount,
		ContactPhone: h.shop.ContactPhone,
		Instructions: fmt.Sprintf("Надішліть номер замовлення %s у Viber на %s", order.Number, h.shop.ContactPhone),
	})
}

// List returns all orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	orders := h.orders.List(c.Request.Context())
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Orders: items, Total: len(items)})
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// ShopInfo serves the contact block shown on the storefront.
func (h *OrderHandler) ShopInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ShopInfoResponse{
		Name:         h.shop.Name,
		ContactPhone: h.shop.ContactPhone,
		ViberLink:    h.shop.ViberLink,
		TelegramLink: h.shop.TelegramLink,
	})
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.CartItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, toCartItemResponse(item))
	}
	return dto.OrderResponse{
		ID:           order.ID,
		Number:       order.Number,
		Items:        items,
		TotalAmount:  order.TotalAmount,
		CustomerInfo: order.CustomerInfo,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt,
	}
}
