package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/service"
)

type PaymentHandler struct {
	paymentSvc *service.PaymentService
}

func NewPaymentHandler(paymentSvc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payment data", err)
		return
	}
	payment, err := h.paymentSvc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusBadRequest, "Invalid order ID format", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error creating payment", err)
		return
	}
	respondData(c, http.StatusCreated, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching payments", err)
		return
	}
	respondData(c, http.StatusOK, payments)
}

func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("paymentId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payment ID format", err)
		return
	}
	payment, err := h.paymentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			respondError(c, http.StatusNotFound, "Payment not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error fetching payment", err)
		return
	}
	respondData(c, http.StatusOK, payment)
}

func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("paymentId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payment ID format", err)
		return
	}
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Status is required", err)
		return
	}
	payment, err := h.paymentSvc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			respondError(c, http.StatusNotFound, "Payment not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error updating payment", err)
		return
	}
	respondData(c, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("paymentId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payment ID format", err)
		return
	}
	if err := h.paymentSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			respondError(c, http.StatusNotFound, "Payment not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error deleting payment", err)
		return
	}
	respondMessage(c, http.StatusOK, "Payment deleted successfully")
}
