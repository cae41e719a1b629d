package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/service"
)

const (
	claimsKey = "authClaims"
	userKey   = "authUser"
)

// extractToken enforces the header contract: exactly the scheme label,
// one space, and a non-empty token.
func extractToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// authenticate verifies the bearer token and attaches the decoded claims.
// This is the whole check for admin routes; user routes add a store lookup.
func authenticate(c *gin.Context, auth *service.AuthService) (*service.Claims, bool) {
	token, ok := extractToken(c)
	if !ok {
		abortUnauthorized(c, "Authorization format must be: Bearer <token>")
		return nil, false
	}
	claims, err := auth.VerifyToken(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			abortUnauthorized(c, "Token expired")
		} else {
			abortUnauthorized(c, "Invalid token")
		}
		return nil, false
	}
	c.Set(claimsKey, claims)
	return claims, true
}

// RequireUser admits any valid token and re-resolves the user record from
// the store, so a deleted or altered account stops authorizing immediately.
// One extra lookup per request, deliberately traded for freshness.
func RequireUser(auth *service.AuthService, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}
		user, err := users.Resolve(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				abortUnauthorized(c, "User not found")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error in authentication"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin trusts the signed claims without a store lookup: admin
// checks stay stateless and accept token-lifetime staleness for speed.
func RequireAdmin(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth)
		if !ok {
			return
		}
		if !claims.IsAdmin || claims.Role != service.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized as admin"})
			return
		}
		c.Next()
	}
}

// GetClaims returns the decoded token claims attached by the gate.
func GetClaims(c *gin.Context) *service.Claims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*service.Claims)
	return claims
}

// GetUser returns the resolved user record on user-authenticated routes.
func GetUser(c *gin.Context) *model.User {
	v, _ := c.Get(userKey)
	user, _ := v.(*model.User)
	return user
}

// GetUserID returns the resolved user's id, or the zero id when absent.
func GetUserID(c *gin.Context) primitive.ObjectID {
	if user := GetUser(c); user != nil {
		return user.ID
	}
	return primitive.NilObjectID
}
