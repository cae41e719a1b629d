package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/service"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid registration data", err)
		return
	}

	resp, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			respondError(c, http.StatusBadRequest, "User already exists", err)
		case errors.Is(err, service.ErrInvalidMobile):
			respondError(c, http.StatusBadRequest, "Valid mobile number is required", err)
		default:
			respondError(c, http.StatusInternalServerError, "Error creating user", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": resp.Token, "user": resp.User})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid login data", err)
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error during login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": resp.Token, "user": resp.User})
}

// AdminLogin validates against the singleton admin account. The token in the
// response already carries the Bearer prefix.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide both userId and password", err)
		return
	}

	resp, err := h.authSvc.AdminLogin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error during login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   resp.Token,
		"admin":   resp.Admin,
	})
}

// VerifyEmail reports whether an account exists for the given email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, http.StatusBadRequest, "Email is required", nil)
		return
	}
	exists, err := h.authSvc.VerifyEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error verifying user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
