package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boldserve/boldserve-api/internal/service"
)

type DashboardHandler struct {
	dashboardSvc *service.DashboardService
}

func NewDashboardHandler(dashboardSvc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Stats returns the headline numbers: customer count, order count and
// revenue over completed payments.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching dashboard stats", err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

func (h *DashboardHandler) Users(c *gin.Context) {
	users, err := h.dashboardSvc.Users(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching users", err)
		return
	}
	respondData(c, http.StatusOK, users)
}

func (h *DashboardHandler) Orders(c *gin.Context) {
	orders, err := h.dashboardSvc.Orders(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching orders", err)
		return
	}
	respondData(c, http.StatusOK, orders)
}

func (h *DashboardHandler) Payments(c *gin.Context) {
	payments, err := h.dashboardSvc.Payments(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching payments", err)
		return
	}
	respondData(c, http.StatusOK, payments)
}

func (h *DashboardHandler) Revenue(c *gin.Context) {
	revenue, err := h.dashboardSvc.Revenue(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching revenue", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "totalRevenue": revenue})
}
