package api

import (
	"time"

	"mess-booking/internal/model"
)

// BookingRequest 未帶的餐別：新建時預設訂餐，更新時保留原值
// swagger:model api.BookingRequest
type BookingRequest struct {
	Date      string `json:"date" validate:"required" example:"2025-03-05"`
	Breakfast *bool  `json:"breakfast,omitempty" example:"true"`
	Lunch     *bool  `json:"lunch,omitempty" example:"false"`
	Dinner    *bool  `json:"dinner,omitempty" example:"true"`
}

func (r BookingRequest) Flags() model.MealFlags {
	return model.MealFlags{Breakfast: r.Breakfast, Lunch: r.Lunch, Dinner: r.Dinner}
}

// swagger:model api.UserSummary
type UserSummary struct {
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
}

// swagger:model api.BookingResponse
type BookingResponse struct {
	ID        int          `json:"id" example:"12"`
	UserID    int          `json:"userId" example:"1"`
	Date      string       `json:"date" example:"2025-03-05"`
	Breakfast bool         `json:"breakfast" example:"true"`
	Lunch     bool         `json:"lunch" example:"false"`
	Dinner    bool         `json:"dinner" example:"true"`
	CreatedAt time.Time    `json:"createdAt" example:"2025-03-04T21:10:00Z"`
	User      *UserSummary `json:"user,omitempty"`
}

// NoBookingResponse 今天尚未訂餐時的 404 回應
// swagger:model api.NoBookingResponse
type NoBookingResponse struct {
	Message string `json:"message" example:"No booking found for today"`
	// date 伺服器時區的今天
	Date string `json:"date" example:"2025-03-05"`
}

func NewBookingResponse(b model.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Date:      b.Date.Format(time.DateOnly),
		Breakfast: b.Breakfast,
		Lunch:     b.Lunch,
		Dinner:    b.Dinner,
		CreatedAt: b.CreatedAt,
	}
}

func NewBookingResponses(bookings []model.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}

func NewBookingWithUserResponses(bookings []model.BookingWithUser) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		r := NewBookingResponse(b.Booking)
		r.User = &UserSummary{Name: b.UserName, Email: b.UserEmail}
		out = append(out, r)
	}
	return out
}

// swagger:model api.MealCountResponse
type MealCountResponse struct {
	Date           string `json:"date" example:"2025-03-05"`
	BreakfastCount int    `json:"breakfastCount" example:"2"`
	LunchCount     int    `json:"lunchCount" example:"2"`
	DinnerCount    int    `json:"dinnerCount" example:"1"`
	TotalBookings  int    `json:"totalBookings" example:"3"`
}

func NewMealCountResponse(date time.Time, c model.MealCounts) MealCountResponse {
	return MealCountResponse{
		Date:           date.Format(time.DateOnly),
		BreakfastCount: c.Breakfast,
		LunchCount:     c.Lunch,
		DinnerCount:    c.Dinner,
		TotalBookings:  c.TotalBookings,
	}
}
