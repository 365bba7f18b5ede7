package handler

import (
	"strconv"

	"mess-booking/internal/apperr"

	"github.com/labstack/echo/v4"
)

// ParamID 解析正整數 path 參數
func ParamID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.ErrValidation, "invalid "+name)
	}
	return id, nil
}
