package handler

import (
	"net/http"

	"mess-booking/internal/api"
	"mess-booking/internal/apperr"
	"mess-booking/internal/logging"

	"github.com/labstack/echo/v4"
)

// RespondError 依錯誤分類回傳狀態碼與 {"message": ...}；5xx 會寫入 log
func RespondError(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.From(c).WithError(err).Error("request failed")
	}
	return c.JSON(status, api.ErrorResponse{Message: apperr.Public(err, c.Echo().Debug)})
}

// BadRequest 回傳 400 與訊息
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

// BindAndValidate 先 Bind 再以 go-playground/validator 驗證
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.ErrValidation, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperr.New(apperr.ErrValidation, err.Error())
	}
	return nil
}
