package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mess-booking/internal/api"
	"mess-booking/internal/model"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginAndProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret1" {
			writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, api.AuthResponse{
			UserResponse: api.UserResponse{ID: 1, Name: "Alice", Email: req.Email, IsAdmin: true},
			Token:        "tok-1",
		})
	})
	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, api.UserResponse{ID: 1, Name: "Alice"})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.Login(ctx, "alice@example.com", "wrong")
	require.True(t, IsStatus(err, http.StatusUnauthorized))
	require.Contains(t, err.Error(), "Invalid email or password")

	s, err := c.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "tok-1", s.Token)
	require.True(t, s.IsAdmin())

	u, err := c.Profile(ctx, s)
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Name)

	_, err = c.Profile(ctx, Session{})
	require.ErrorIs(t, err, errNoSession)
}

func TestTodayBookingAndToggle(t *testing.T) {
	// 伺服器時區的日期可能與本機不同，新訂餐一律用伺服器回報的日期
	const serverToday = "1999-12-31"
	var stored *api.BookingResponse
	var lastReq api.BookingRequest
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bookings/user/today", func(w http.ResponseWriter, r *http.Request) {
		if stored == nil {
			writeJSON(w, http.StatusNotFound, api.NoBookingResponse{Message: "No booking found for today", Date: serverToday})
			return
		}
		writeJSON(w, http.StatusOK, stored)
	})
	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		lastReq = api.BookingRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastReq))
		status := http.StatusOK
		if stored == nil {
			stored = &api.BookingResponse{ID: 1, UserID: 1, Date: lastReq.Date, Breakfast: true, Lunch: true, Dinner: true}
			status = http.StatusCreated
		}
		for _, m := range []struct {
			v   *bool
			dst *bool
		}{{lastReq.Breakfast, &stored.Breakfast}, {lastReq.Lunch, &stored.Lunch}, {lastReq.Dinner, &stored.Dinner}} {
			if m.v != nil {
				*m.dst = *m.v
			}
		}
		writeJSON(w, status, stored)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()
	s := Session{Token: "tok"}

	b, found, err := c.TodayBooking(ctx, s)
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, b)

	// 尚未訂餐：該餐不訂，其餘照訂
	b, err = c.ToggleMeal(ctx, s, Lunch)
	require.NoError(t, err)
	require.Equal(t, serverToday, lastReq.Date)
	require.True(t, b.Breakfast)
	require.False(t, b.Lunch)
	require.True(t, b.Dinner)

	// 已有訂餐：只送出被切換的餐別
	b, err = c.ToggleMeal(ctx, s, Dinner)
	require.NoError(t, err)
	require.Nil(t, lastReq.Breakfast)
	require.Nil(t, lastReq.Lunch)
	require.NotNil(t, lastReq.Dinner)
	require.Equal(t, serverToday, lastReq.Date)
	require.False(t, b.Dinner)
	require.True(t, b.Breakfast)

	b, found, err = c.TodayBooking(ctx, s)
	require.NoError(t, err)
	require.True(t, found)
	require.False(t, b.Lunch)
}

func TestToggleMealNeedsServerDate(t *testing.T) {
	posted := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bookings/user/today", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Message: "No booking found for today"})
	})
	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		posted = true
		writeJSON(w, http.StatusCreated, api.BookingResponse{})
	})
	c := newTestClient(t, mux)

	_, err := c.ToggleMeal(context.Background(), Session{Token: "tok"}, Lunch)
	require.ErrorContains(t, err, "today's date")
	require.False(t, posted)
}

func TestParseMeal(t *testing.T) {
	m, err := ParseMeal("dinner")
	require.NoError(t, err)
	require.Equal(t, Dinner, m)
	_, err = ParseMeal("brunch")
	require.Error(t, err)
}

func TestMenuAndBills(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/menu/today", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Message: "No menu found for today"})
	})
	mux.HandleFunc("GET /api/menu", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.MenuEntry{{Day: "Monday"}, {Day: "Tuesday"}})
	})
	mux.HandleFunc("POST /api/bills/generate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Message: "Bill already exists for this month"})
	})
	mux.HandleFunc("PUT /api/bills/7/pay", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.Bill{ID: 7, IsPaid: true, TotalAmount: 250})
	})
	mux.HandleFunc("GET /api/bills", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.BillWithUser{{Bill: model.Bill{ID: 7}, UserName: "Alice"}})
	})
	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	})
	c := newTestClient(t, mux)
	ctx := context.Background()
	s := Session{Token: "admin"}

	_, found, err := c.TodayMenu(ctx)
	require.NoError(t, err)
	require.False(t, found)

	week, err := c.WeeklyMenu(ctx)
	require.NoError(t, err)
	require.Len(t, week, 2)

	_, err = c.GenerateBill(ctx, s, 1, 3, 2025)
	require.True(t, IsStatus(err, http.StatusBadRequest))
	require.Contains(t, err.Error(), "Bill already exists")

	bill, err := c.MarkPaid(ctx, s, 7)
	require.NoError(t, err)
	require.True(t, bill.IsPaid)
	require.Equal(t, int64(250), bill.TotalAmount)

	all, err := c.AllBills(ctx, s)
	require.NoError(t, err)
	require.Equal(t, "Alice", all[0].UserName)

	err = c.Ping(ctx)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, http.StatusServiceUnavailable, ae.Status)
	require.Equal(t, "down", ae.Message)
}
