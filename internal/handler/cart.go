package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/dto"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/service"
)

type CartHandler struct {
	cart    *service.CartService
	catalog *service.CatalogService
}

func NewCartHandler(cart *service.CartService, catalog *service.CatalogService) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog}
}

func (h *CartHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	items := h.cart.Get(ctx)
	resp := dto.CartResponse{
		Items: make([]dto.CartItemResponse, 0, len(items)),
		Count: h.cart.Count(ctx),
		Total: h.cart.Total(ctx),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toCartItemResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem resolves the product and stores a snapshot of it in the cart
// entry; later catalog edits do not touch entries already in the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	item := model.CartItem{
		Product:  *product,
		Quantity: req.Quantity,
		Size:     req.Size,
		Color:    req.Color,
	}
	if err := h.cart.Add(c.Request.Context(), item); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrSizeNotOffered),
			errors.Is(err, service.ErrColorNotOffered):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "item added"})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.cart.UpdateQuantity(c.Request.Context(), req.ProductID, req.Size, req.Color, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.cart.Remove(c.Request.Context(), req.ProductID, req.Size, req.Color); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func toCartItemResponse(item model.CartItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		Product:  toProductResponse(item.Product),
		Quantity: item.Quantity,
		Size:     item.Size,
		Color:    item.Color,
	}
}
