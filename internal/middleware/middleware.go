package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"mess-booking/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier 驗證 bearer token 並回傳 claims；*service.Tokens 實作此介面
type TokenVerifier interface {
	Verify(token string) (*service.CustomClaims, error)
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func extractClaims(c echo.Context, v TokenVerifier) (*service.CustomClaims, error) {
	tokenString, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := v.Verify(tokenString)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Not authorized, token failed: %v", err))
	}
	return claims, nil
}

// Claims 取出 RequireAuth / OptionalAuth 放入的 claims
func Claims(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims, ok
}

func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, v)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin 需先通過 RequireAuth，角色必須為 admin
func RequireAdmin(v TokenVerifier) echo.MiddlewareFunc {
	auth := RequireAuth(v)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims, _ := Claims(c)
			if !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Not authorized as an admin")
			}
			return next(c)
		})
	}
}

// OptionalAuth 沒有 Authorization header 時直接放行；有則必須有效
func OptionalAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			claims, err := extractClaims(c, v)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}
