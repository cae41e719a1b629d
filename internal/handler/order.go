package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/service"
)

type OrderHandler struct {
	orderSvc *service.OrderService
}

func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order data", err)
		return
	}
	order, err := h.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error creating order", err)
		return
	}
	respondData(c, http.StatusCreated, order)
}

// List returns orders newest first; ?status= filters by exact status and an
// unknown status yields an empty list.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching orders", err)
		return
	}
	respondData(c, http.StatusOK, orders)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}
	order, err := h.orderSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error fetching order", err)
		return
	}
	respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order data", err)
		return
	}
	order, err := h.orderSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error updating order", err)
		return
	}
	respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}
	if err := h.orderSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error deleting order", err)
		return
	}
	respondMessage(c, http.StatusOK, "Order deleted successfully")
}

func (h *OrderHandler) Count(c *gin.Context) {
	n, err := h.orderSvc.Count(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error counting orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": n})
}
