package bookings

import (
	"context"
	"net/http"
	"time"

	"mess-booking/internal/api"
	"mess-booking/internal/handler"
	"mess-booking/internal/middleware"
	"mess-booking/internal/model"

	"github.com/labstack/echo/v4"
)

// Ledger 是訂餐服務；*service.Ledger 實作此介面
type Ledger interface {
	Today() time.Time
	ParseDate(s string) (time.Time, error)
	Upsert(ctx context.Context, userID int, date time.Time, flags model.MealFlags) (*model.Booking, bool, error)
	ForDate(ctx context.Context, userID int, date time.Time) (*model.Booking, bool, error)
	ListForUser(ctx context.Context, userID int) ([]model.Booking, error)
	ListForDate(ctx context.Context, date time.Time) ([]model.BookingWithUser, error)
	CountForDate(ctx context.Context, date time.Time) (model.MealCounts, error)
}

// @Summary     Book meals for a date
// @Description 建立或更新自己某天的訂餐；未帶的餐別在新建時預設為訂，更新時保留原值
// @Tags        bookings
// @Accept      json
// @Produce     json
// @Param       body body     api.BookingRequest true "日期與餐別"
// @Success     200  {object} api.BookingResponse "已更新"
// @Success     201  {object} api.BookingResponse "已建立"
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bookings [post]
func UpsertHandler(l Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.BookingRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		date, err := l.ParseDate(req.Date)
		if err != nil {
			return handler.RespondError(c, err)
		}
		claims, _ := middleware.Claims(c)
		b, created, err := l.Upsert(c.Request().Context(), claims.UserID, date, req.Flags())
		if err != nil {
			return handler.RespondError(c, err)
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return c.JSON(status, api.NewBookingResponse(*b))
	}
}

// @Summary     My bookings
// @Description 目前使用者的訂餐紀錄，由新到舊
// @Tags        bookings
// @Produce     json
// @Success     200 {array}  api.BookingResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bookings/user [get]
func MyBookingsHandler(l Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := middleware.Claims(c)
		list, err := l.ListForUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewBookingResponses(list))
	}
}

// @Summary     My booking for today
// @Tags        bookings
// @Produce     json
// @Success     200 {object} api.BookingResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.NoBookingResponse "今天沒有訂餐"
// @Security    BearerAuth
// @Router      /bookings/user/today [get]
func MyTodayHandler(l Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := middleware.Claims(c)
		today := l.Today()
		b, found, err := l.ForDate(c.Request().Context(), claims.UserID, today)
		if err != nil {
			return handler.RespondError(c, err)
		}
		if !found {
			return c.JSON(http.StatusNotFound, api.NoBookingResponse{
				Message: "No booking found for today",
				Date:    today.Format(time.DateOnly),
			})
		}
		return c.JSON(http.StatusOK, api.NewBookingResponse(*b))
	}
}

// @Summary     All bookings for today
// @Description 管理員查看今天所有人的訂餐，附帶使用者姓名與 Email
// @Tags        bookings
// @Produce     json
// @Success     200 {array}  api.BookingResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bookings/today [get]
func TodayHandler(l Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		return listForDate(c, l, l.Today())
	}
}

// @Summary     Bookings for a date
// @Tags        bookings
// @Produce     json
// @Param       date path     string true "日期 (YYYY-MM-DD)"
// @Success     200  {array}  api.BookingResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bookings/date/{date} [get]
func ByDateHandler(l Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := l.ParseDate(c.Param("date"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return listForDate(c, l, date)
	}
}

func listForDate(c echo.Context, l Ledger, date time.Time) error {
	list, err := l.ListForDate(c.Request().Context(), date)
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, api.NewBookingWithUserResponses(list))
}

// @Summary     Meal counts for today
// @Description 管理員查看今天各餐的訂餐人數
// @Tags        bookings
// @Produce     json
// @Success     200 {object} api.MealCountResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bookings/today/count [get]
func TodayCountHandler(l Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		today := l.Today()
		counts, err := l.CountForDate(c.Request().Context(), today)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewMealCountResponse(today, counts))
	}
}
