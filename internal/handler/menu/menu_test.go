package menu

import (
	"context"
	"net/http"
	"testing"

	"mess-booking/internal/apperr"
	"mess-booking/internal/handler"
	"mess-booking/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeMenu struct {
	UpsertFn func(ctx context.Context, day, breakfast, lunch, dinner string, updatedBy int) (*model.MenuEntry, bool, error)
	ForDayFn func(ctx context.Context, day string) (*model.MenuEntry, error)
	TodayFn  func(ctx context.Context) (*model.MenuEntry, error)
	ListFn   func(ctx context.Context) ([]model.MenuEntry, error)
	DeleteFn func(ctx context.Context, day string) error
}

func (f *fakeMenu) Upsert(ctx context.Context, day, b, l, d string, by int) (*model.MenuEntry, bool, error) {
	return f.UpsertFn(ctx, day, b, l, d, by)
}
func (f *fakeMenu) ForDay(ctx context.Context, day string) (*model.MenuEntry, error) {
	return f.ForDayFn(ctx, day)
}
func (f *fakeMenu) Today(ctx context.Context) (*model.MenuEntry, error) { return f.TodayFn(ctx) }
func (f *fakeMenu) List(ctx context.Context) ([]model.MenuEntry, error) { return f.ListFn(ctx) }
func (f *fakeMenu) Delete(ctx context.Context, day string) error       { return f.DeleteFn(ctx, day) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	return e
}

func TestListHandler(t *testing.T) {
	e := newEcho()
	m := &fakeMenu{ListFn: func(context.Context) ([]model.MenuEntry, error) { return nil, nil }}

	c, rec := handler.NewTestContext(e, http.MethodGet, "/api/menu", "")
	require.NoError(t, ListHandler(m)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	m.ListFn = func(context.Context) ([]model.MenuEntry, error) {
		return []model.MenuEntry{{Day: "Monday", Breakfast: "Idli"}}, nil
	}
	c, rec = handler.NewTestContext(e, http.MethodGet, "/api/menu", "")
	require.NoError(t, ListHandler(m)(c))
	require.Contains(t, rec.Body.String(), `"day":"Monday"`)
}

func TestTodayAndDayHandlers(t *testing.T) {
	e := newEcho()
	m := &fakeMenu{
		TodayFn: func(context.Context) (*model.MenuEntry, error) {
			return nil, apperr.New(apperr.ErrNotFound, "No menu found for today")
		},
		ForDayFn: func(_ context.Context, day string) (*model.MenuEntry, error) {
			if day == "someday" {
				return nil, apperr.New(apperr.ErrValidation, "Invalid day")
			}
			return &model.MenuEntry{Day: "Wednesday", Lunch: "Rice"}, nil
		},
	}

	c, rec := handler.NewTestContext(e, http.MethodGet, "/api/menu/today", "")
	require.NoError(t, TodayHandler(m)(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"No menu found for today"}`, rec.Body.String())

	c, rec = handler.NewTestContext(e, http.MethodGet, "/api/menu/wednesday", "", "day", "wednesday")
	require.NoError(t, GetDayHandler(m)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"lunch":"Rice"`)

	c, rec = handler.NewTestContext(e, http.MethodGet, "/api/menu/someday", "", "day", "someday")
	require.NoError(t, GetDayHandler(m)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertHandler(t *testing.T) {
	e := newEcho()
	var gotBy int
	m := &fakeMenu{
		UpsertFn: func(_ context.Context, day, b, l, d string, by int) (*model.MenuEntry, bool, error) {
			gotBy = by
			return &model.MenuEntry{Day: day, Breakfast: b, Lunch: l, Dinner: d, UpdatedBy: &by}, day == "Monday", nil
		},
	}

	body := `{"day":"Monday","breakfast":"Idli","lunch":"Rice","dinner":"Roti"}`
	c, rec := handler.NewTestContext(e, http.MethodPost, "/api/menu", body)
	handler.SetClaims(c, 7, model.RoleAdmin)
	require.NoError(t, UpsertHandler(m)(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 7, gotBy)

	body = `{"day":"Tuesday","breakfast":"Idli","lunch":"Rice","dinner":"Roti"}`
	c, rec = handler.NewTestContext(e, http.MethodPost, "/api/menu", body)
	handler.SetClaims(c, 7, model.RoleAdmin)
	require.NoError(t, UpsertHandler(m)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = handler.NewTestContext(e, http.MethodPost, "/api/menu", `{"day":"Tuesday"}`)
	handler.SetClaims(c, 7, model.RoleAdmin)
	require.NoError(t, UpsertHandler(m)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHandler(t *testing.T) {
	e := newEcho()
	m := &fakeMenu{
		DeleteFn: func(_ context.Context, day string) error {
			if day == "sunday" {
				return apperr.New(apperr.ErrNotFound, "Menu not found")
			}
			return nil
		},
	}

	c, rec := handler.NewTestContext(e, http.MethodDelete, "/api/menu/monday", "", "day", "monday")
	require.NoError(t, DeleteHandler(m)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Menu removed"}`, rec.Body.String())

	c, rec = handler.NewTestContext(e, http.MethodDelete, "/api/menu/sunday", "", "day", "sunday")
	require.NoError(t, DeleteHandler(m)(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
