package menu

import (
	"context"
	"net/http"

	"mess-booking/internal/api"
	"mess-booking/internal/handler"
	"mess-booking/internal/middleware"
	"mess-booking/internal/model"

	"github.com/labstack/echo/v4"
)

// Menu 是菜單服務；*service.Menu 實作此介面
type Menu interface {
	Upsert(ctx context.Context, day, breakfast, lunch, dinner string, updatedBy int) (*model.MenuEntry, bool, error)
	ForDay(ctx context.Context, day string) (*model.MenuEntry, error)
	Today(ctx context.Context) (*model.MenuEntry, error)
	List(ctx context.Context) ([]model.MenuEntry, error)
	Delete(ctx context.Context, day string) error
}

// @Summary     List the weekly menu
// @Description 依週一到週日的順序回傳所有菜單
// @Tags        menu
// @Produce     json
// @Success     200 {array}  model.MenuEntry
// @Failure     500 {object} api.ErrorResponse
// @Router      /menu [get]
func ListHandler(m Menu) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := m.List(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		if entries == nil {
			entries = []model.MenuEntry{}
		}
		return c.JSON(http.StatusOK, entries)
	}
}

// @Summary     Today's menu
// @Description 依食堂時區的星期幾回傳今天的菜單
// @Tags        menu
// @Produce     json
// @Success     200 {object} model.MenuEntry
// @Failure     404 {object} api.ErrorResponse "今天沒有菜單"
// @Router      /menu/today [get]
func TodayHandler(m Menu) echo.HandlerFunc {
	return func(c echo.Context) error {
		entry, err := m.Today(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, entry)
	}
}

// @Summary     Menu for a day
// @Description 星期名稱不分大小寫，例如 monday
// @Tags        menu
// @Produce     json
// @Param       day path     string true "星期名稱"
// @Success     200 {object} model.MenuEntry
// @Failure     400 {object} api.ErrorResponse "星期名稱錯誤"
// @Failure     404 {object} api.ErrorResponse
// @Router      /menu/{day} [get]
func GetDayHandler(m Menu) echo.HandlerFunc {
	return func(c echo.Context) error {
		entry, err := m.ForDay(c.Request().Context(), c.Param("day"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, entry)
	}
}

// @Summary     Create or update a day's menu
// @Description 管理員新增或覆寫某天的菜單；新建回 201，更新回 200
// @Tags        menu
// @Accept      json
// @Produce     json
// @Param       body body     api.MenuRequest true "菜單內容"
// @Success     200  {object} model.MenuEntry
// @Success     201  {object} model.MenuEntry
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /menu [post]
func UpsertHandler(m Menu) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.MenuRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		claims, _ := middleware.Claims(c)
		entry, created, err := m.Upsert(c.Request().Context(), req.Day, req.Breakfast, req.Lunch, req.Dinner, claims.UserID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return c.JSON(status, entry)
	}
}

// @Summary     Delete a day's menu
// @Tags        menu
// @Produce     json
// @Param       day path     string true "星期名稱"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /menu/{day} [delete]
func DeleteHandler(m Menu) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := m.Delete(c.Request().Context(), c.Param("day")); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Menu removed"})
	}
}
