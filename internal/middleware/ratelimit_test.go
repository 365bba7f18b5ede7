package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestLoginRateLimiter(t *testing.T) {
	e := echo.New()
	// 極低速率，確保測試期間不會補充 token
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, LoginRateLimiter(0.001, 2))

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	require.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	rec := send("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "Too many login attempts")

	// 其他 IP 各自計算
	require.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}
