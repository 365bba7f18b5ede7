package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"mess-booking/internal/api"
)

// Meal 是三餐之一
type Meal string

const (
	Breakfast Meal = "breakfast"
	Lunch     Meal = "lunch"
	Dinner    Meal = "dinner"
)

// ParseMeal 驗證餐別名稱
func ParseMeal(s string) (Meal, error) {
	switch m := Meal(s); m {
	case Breakfast, Lunch, Dinner:
		return m, nil
	}
	return "", fmt.Errorf("unknown meal %q: want breakfast, lunch or dinner", s)
}

func (m Meal) of(b api.BookingResponse) bool {
	switch m {
	case Breakfast:
		return b.Breakfast
	case Lunch:
		return b.Lunch
	default:
		return b.Dinner
	}
}

func (m Meal) set(req *api.BookingRequest, v bool) {
	switch m {
	case Breakfast:
		req.Breakfast = &v
	case Lunch:
		req.Lunch = &v
	default:
		req.Dinner = &v
	}
}

func (c *Client) Book(ctx context.Context, s Session, req api.BookingRequest) (*api.BookingResponse, error) {
	var res api.BookingResponse
	if err := c.authed(ctx, http.MethodPost, "/api/bookings", s, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) MyBookings(ctx context.Context, s Session) ([]api.BookingResponse, error) {
	var res []api.BookingResponse
	if err := c.authed(ctx, http.MethodGet, "/api/bookings/user", s, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// TodayBooking 今天尚未訂餐時 found 為 false
func (c *Client) TodayBooking(ctx context.Context, s Session) (*api.BookingResponse, bool, error) {
	b, _, err := c.todayBooking(ctx, s)
	if err != nil {
		return nil, false, err
	}
	return b, b != nil, nil
}

// todayBooking 尚未訂餐時回傳 nil 與伺服器認定的今天日期
func (c *Client) todayBooking(ctx context.Context, s Session) (*api.BookingResponse, string, error) {
	var res api.BookingResponse
	err := c.authed(ctx, http.MethodGet, "/api/bookings/user/today", s, nil, &res)
	var ae *APIError
	if errors.As(err, &ae) && ae.Status == http.StatusNotFound {
		var nb api.NoBookingResponse
		_ = json.Unmarshal(ae.body, &nb)
		return nil, nb.Date, nil
	}
	if err != nil {
		return nil, "", err
	}
	return &res, res.Date, nil
}

// ToggleMeal 切換今天某一餐。
// 已有訂餐時只反轉該餐；尚未訂餐時建立一筆該餐不訂、其餘照訂的紀錄。
// 日期一律採用伺服器回報的今天。
func (c *Client) ToggleMeal(ctx context.Context, s Session, meal Meal) (*api.BookingResponse, error) {
	current, today, err := c.todayBooking(ctx, s)
	if err != nil {
		return nil, err
	}
	if today == "" {
		return nil, errors.New("server did not report today's date")
	}
	req := api.BookingRequest{Date: today}
	if current != nil {
		meal.set(&req, !meal.of(*current))
		return c.Book(ctx, s, req)
	}
	for _, m := range []Meal{Breakfast, Lunch, Dinner} {
		m.set(&req, m != meal)
	}
	return c.Book(ctx, s, req)
}

func (c *Client) TodayBookings(ctx context.Context, s Session) ([]api.BookingResponse, error) {
	var res []api.BookingResponse
	if err := c.authed(ctx, http.MethodGet, "/api/bookings/today", s, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) TodayCounts(ctx context.Context, s Session) (*api.MealCountResponse, error) {
	var res api.MealCountResponse
	if err := c.authed(ctx, http.MethodGet, "/api/bookings/today/count", s, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// BookingsOn 以 YYYY-MM-DD 查詢某天所有人的訂餐
func (c *Client) BookingsOn(ctx context.Context, s Session, date string) ([]api.BookingResponse, error) {
	var res []api.BookingResponse
	if err := c.authed(ctx, http.MethodGet, "/api/bookings/date/"+pathDay(date), s, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
