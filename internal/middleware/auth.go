package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"yame/internal/auth"
	"yame/internal/domain"
)

// Context keys set by the auth middleware.
const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string
)

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := bearerClaims(c, tokens)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			return next(c)
		}
	}
}

// OptionalAuth sets identity context when a valid token is present and lets
// anonymous requests through. Guest checkout relies on this.
func OptionalAuth(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := bearerClaims(c, tokens); ok {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxUserRoleKey, claims.Role)
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects authenticated users without the admin role. Must run
// after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxUserRoleKey).(string)
			if role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated account ID, nil when anonymous.
func UserID(c echo.Context) *int64 {
	if id, ok := c.Get(CtxUserIDKey).(int64); ok {
		return &id
	}
	return nil
}

func bearerClaims(c echo.Context, tokens *auth.TokenIssuer) (*auth.Claims, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return nil, false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return nil, false
	}
	claims, err := tokens.Verify(raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}
