package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ipqbbqgyy/parking-system/internal/api"
)

// Keys under which AuthMiddleware stores the caller's claims.
const (
	ContextAccountID = "account_id"
	ContextEmail     = "account_email"
	ContextRole      = "account_role"
)

func deny(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}

// AuthMiddleware accepts a driver or operator bearer token and records the
// account it was issued to.
func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			deny(c, http.StatusUnauthorized, "Parking account token required")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(strings.TrimSpace(scheme), "Bearer") {
			deny(c, http.StatusUnauthorized, "Authorization header must be: Bearer <token>")
			return
		}

		token = strings.TrimSpace(token)
		if token == "" {
			deny(c, http.StatusUnauthorized, "Bearer token is empty")
			return
		}

		claims, err := ValidateToken(token, accessTokenSecret)
		switch {
		case errors.Is(err, ErrTokenExpired):
			deny(c, http.StatusUnauthorized, "Parking account token expired")
			return
		case errors.Is(err, ErrInvalidTokenType):
			deny(c, http.StatusUnauthorized, "Parking account token is not an access token")
			return
		case err != nil:
			deny(c, http.StatusUnauthorized, "Parking account token is invalid")
			return
		}

		c.Set(ContextAccountID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets through only accounts holding role. Drivers reaching an
// operator route get 403.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextRole)
		if !exists {
			deny(c, http.StatusUnauthorized, "Parking account role missing from token")
			return
		}

		got, ok := v.(string)
		if !ok || got == "" {
			deny(c, http.StatusUnauthorized, "Parking account role is malformed")
			return
		}

		if got != role {
			deny(c, http.StatusForbidden, "Route requires the "+role+" role")
			return
		}

		c.Next()
	}
}

func AccountID(c *gin.Context) (int, bool) {
	v, exists := c.Get(ContextAccountID)
	if !exists {
		return 0, false
	}

	id, ok := v.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

// AccountEmail is the contact address for reservation and receipt mails.
func AccountEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

// IsOperator reports whether the caller may act on any account's stays.
func IsOperator(c *gin.Context) bool {
	return c.GetString(ContextRole) == RoleAdmin
}
