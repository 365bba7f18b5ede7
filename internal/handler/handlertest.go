package handler

import (
	"io"
	"net/http/httptest"
	"strings"

	"mess-booking/internal/middleware"
	"mess-booking/internal/model"
	"mess-booking/internal/service"

	"github.com/labstack/echo/v4"
)

// NewTestContext 建立帶 JSON body 與 path 參數的 echo context，供 handler 測試使用
func NewTestContext(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

// SetClaims 模擬 RequireAuth 已放入的 claims
func SetClaims(c echo.Context, userID int, role model.Role) {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: userID, Role: role})
}
