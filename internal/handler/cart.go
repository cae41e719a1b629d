package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/middleware"
	"github.com/boldserve/boldserve-api/internal/service"
)

type CartHandler struct {
	cartSvc *service.CartService
}

func NewCartHandler(cartSvc *service.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

// GetCart returns the priced cart: line items at live prices plus the fee
// and tax summary.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartSvc.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching cart items", err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *CartHandler) Summary(c *gin.Context) {
	count, err := h.cartSvc.GetCartCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching cart summary", err)
		return
	}
	respondData(c, http.StatusOK, count)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cart item", err)
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	cart, err := h.cartSvc.AddItem(c.Request.Context(), middleware.GetUserID(c), productID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error adding item to cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to cart successfully", "data": cart})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid item ID", err)
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quantity", err)
		return
	}

	cart, err := h.cartSvc.UpdateQuantity(c.Request.Context(), middleware.GetUserID(c), itemID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			respondError(c, http.StatusNotFound, "Item not found in cart", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error updating quantity", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quantity updated successfully", "data": cart})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid item ID", err)
		return
	}
	if err := h.cartSvc.RemoveItem(c.Request.Context(), middleware.GetUserID(c), itemID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			respondError(c, http.StatusNotFound, "Item not found in cart", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error removing item", err)
		return
	}
	respondMessage(c, http.StatusOK, "Item removed from cart successfully")
}
