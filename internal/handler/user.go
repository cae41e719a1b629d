package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/middleware"
	"github.com/boldserve/boldserve-api/internal/service"
)

type UserHandler struct {
	userSvc *service.UserService
}

func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.userSvc.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error fetching profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile data", err)
		return
	}

	profile, err := h.userSvc.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			respondError(c, http.StatusBadRequest, "Email already in use", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update profile", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": profile})
}

// List returns every account; admin only. Passwords never serialize.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching users", err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// Count returns the number of non-admin accounts.
func (h *UserHandler) Count(c *gin.Context) {
	n, err := h.userSvc.CountCustomers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error counting users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": n})
}
