package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mess-booking/internal/apperr"
	"mess-booking/internal/database"
	"mess-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var (
	ctx  = context.Background()
	day  = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	next = day.AddDate(0, 0, 1)
	now  = time.Date(2025, 3, 5, 8, 30, 0, 0, time.UTC)
)

func boolPtr(b bool) *bool { return &b }

func bookingRecord(id int, b, l, d bool, extra ...any) []any {
	return append([]any{id, 7, day, b, l, d, now}, extra...)
}

func billRecord(id int, paid bool, extra ...any) []any {
	return append([]any{id, 7, 3, 2025, 2, 3, 1, int64(50), int64(100), int64(100), int64(500), paid, now}, extra...)
}

func TestUpsertBooking(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			gotSQL = sql
			gotArgs = args
			return &database.FakeRow{Values: bookingRecord(1, true, false, true, true)}
		},
	}

	b, created, err := UpsertBooking(ctx, db, 7, day, model.MealFlags{Lunch: boolPtr(false)})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 1, b.ID)
	require.False(t, b.Lunch)
	require.Contains(t, gotSQL, "ON CONFLICT (user_id, booking_date) DO UPDATE")
	require.Contains(t, gotSQL, "COALESCE($3::boolean, TRUE)")
	require.Equal(t, 7, gotArgs[0])
	require.Equal(t, day, gotArgs[1])
	require.Nil(t, gotArgs[2].(*bool))
	require.False(t, *gotArgs[3].(*bool))
	require.Nil(t, gotArgs[4].(*bool))

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Values: bookingRecord(1, true, false, true, false)}
	}
	_, created, err = UpsertBooking(ctx, db, 7, day, model.MealFlags{})
	require.NoError(t, err)
	require.False(t, created)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: errors.New("conn")}
	}
	_, _, err = UpsertBooking(ctx, db, 7, day, model.MealFlags{})
	require.ErrorContains(t, err, "UpsertBooking: conn")
}

func TestGetBookingForDate(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, []any{7, day, next}, args)
			return &database.FakeRow{Values: bookingRecord(3, true, true, true)}
		},
	}
	b, err := GetBookingForDate(ctx, db, 7, day, next)
	require.NoError(t, err)
	require.Equal(t, 3, b.ID)
	require.Equal(t, day, b.Date)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: pgx.ErrNoRows}
	}
	_, err = GetBookingForDate(ctx, db, 7, day, next)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListBookings(t *testing.T) {
	var gotSQL string
	db := &database.FakeDB{
		QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
			gotSQL = sql
			return &database.FakeRows{Records: [][]any{
				bookingRecord(2, true, true, false),
				bookingRecord(1, false, false, false),
			}}, nil
		},
	}
	list, err := ListBookingsForUser(ctx, db, 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Contains(t, gotSQL, "ORDER BY b.booking_date DESC")

	list, err = ListBookingsForUserBetween(ctx, db, 7, day, day.AddDate(0, 0, 26))
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Contains(t, gotSQL, "b.booking_date <= $3")

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("q") }
	_, err = ListBookingsForUser(ctx, db, 7)
	require.Error(t, err)

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{Records: [][]any{bookingRecord(1, true, true, true)}, ScanErr: errors.New("scan")}, nil
	}
	_, err = ListBookingsForUser(ctx, db, 7)
	require.Error(t, err)

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{Error: errors.New("iter")}, nil
	}
	_, err = ListBookingsForUser(ctx, db, 7)
	require.ErrorContains(t, err, "iter")

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{}, nil
	}
	list, err = ListBookingsForUser(ctx, db, 7)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestListBookingsForDate(t *testing.T) {
	db := &database.FakeDB{
		QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "JOIN users u")
			require.Equal(t, []any{day, next}, args)
			return &database.FakeRows{Records: [][]any{
				bookingRecord(1, true, false, true, "Alice", "alice@example.com"),
			}}, nil
		},
	}
	list, err := ListBookingsForDate(ctx, db, day, next)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Alice", list[0].UserName)
	require.Equal(t, "alice@example.com", list[0].UserEmail)
	require.True(t, list[0].Dinner)
}

func TestCountMealsForDate(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "COUNT(*) FILTER (WHERE breakfast)")
			return &database.FakeRow{Values: []any{2, 2, 1, 3}}
		},
	}
	c, err := CountMealsForDate(ctx, db, day, next)
	require.NoError(t, err)
	require.Equal(t, model.MealCounts{Breakfast: 2, Lunch: 2, Dinner: 1, TotalBookings: 3}, c)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: errors.New("boom")}
	}
	_, err = CountMealsForDate(ctx, db, day, next)
	require.Error(t, err)
}

func TestBills(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, []any{7, 3, 2025}, args)
			return &database.FakeRow{Values: []any{true}}
		},
	}
	exists, err := BillExists(ctx, db, 7, 3, 2025)
	require.NoError(t, err)
	require.True(t, exists)

	b := &model.Bill{UserID: 7, Month: 3, Year: 2025, TotalAmount: 500}
	db.QueryRowFn = func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "ON CONFLICT (user_id, month, year) DO NOTHING")
		require.Len(t, args, 10)
		return &database.FakeRow{Values: []any{11, false, now}}
	}
	require.NoError(t, InsertBill(ctx, db, b))
	require.Equal(t, 11, b.ID)
	require.Equal(t, now, b.GeneratedAt)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: pgx.ErrNoRows}
	}
	err = InsertBill(ctx, db, &model.Bill{})
	require.ErrorIs(t, err, apperr.ErrConflict)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Values: billRecord(11, true)}
	}
	paid, err := MarkBillPaid(ctx, db, 11)
	require.NoError(t, err)
	require.True(t, paid.IsPaid)
	got, err := GetBill(ctx, db, 11)
	require.NoError(t, err)
	require.Equal(t, int64(500), got.TotalAmount)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: pgx.ErrNoRows}
	}
	_, err = MarkBillPaid(ctx, db, 99)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = GetBill(ctx, db, 99)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListBills(t *testing.T) {
	db := &database.FakeDB{
		QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "ORDER BY bl.year DESC, bl.month DESC")
			if strings.Contains(sql, "JOIN users") {
				return &database.FakeRows{Records: [][]any{billRecord(1, false, "Bob", "bob@example.com")}}, nil
			}
			return &database.FakeRows{Records: [][]any{billRecord(1, false), billRecord(2, true)}}, nil
		},
	}
	bills, err := ListBillsForUser(ctx, db, 7)
	require.NoError(t, err)
	require.Len(t, bills, 2)

	all, err := ListAllBills(ctx, db)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Bob", all[0].UserName)
}

func TestUsers(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, "alice@example.com", args[1])
			return &database.FakeRow{Values: []any{5, now}}
		},
	}
	u, err := CreateUser(ctx, db, &model.User{Name: "Alice", Email: " Alice@Example.com ", PasswordHash: "h"})
	require.NoError(t, err)
	require.Equal(t, 5, u.ID)
	require.Equal(t, "alice@example.com", u.Email)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: &pgconn.PgError{Code: "23505"}}
	}
	_, err = CreateUser(ctx, db, &model.User{Email: "a@b.c"})
	require.ErrorIs(t, err, apperr.ErrConflict)

	db.QueryRowFn = func(_ context.Context, _ string, args ...any) pgx.Row {
		require.Equal(t, "bob@example.com", args[0])
		return &database.FakeRow{Values: []any{6, "Bob", "bob@example.com", "h", true, now}}
	}
	u, err = GetUserByEmail(ctx, db, "BOB@example.com")
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, u.Role())

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: pgx.ErrNoRows}
	}
	_, err = GetUserByID(ctx, db, 1)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{Records: [][]any{{6, "Bob", "bob@example.com", "h", false, now}}}, nil
	}
	users, err := ListUsers(ctx, db)
	require.NoError(t, err)
	require.Len(t, users, 1)

	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("UPDATE 0"), nil
	}
	require.ErrorIs(t, UpdateUserPassword(ctx, db, 9, "h"), apperr.ErrNotFound)
	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	require.NoError(t, UpdateUserPassword(ctx, db, 6, "h"))
}

func TestMenu(t *testing.T) {
	admin := 1
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "ON CONFLICT (day) DO UPDATE")
			require.Equal(t, "Monday", args[0])
			return &database.FakeRow{Values: []any{now, true}}
		},
	}
	m := &model.MenuEntry{Day: "Monday", Breakfast: "Idli", Lunch: "Rice", Dinner: "Roti", UpdatedBy: &admin}
	created, err := UpsertMenuEntry(ctx, db, m)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, now, m.UpdatedAt)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Values: []any{"Monday", "Idli", "Rice", "Roti", &admin, now}}
	}
	got, err := GetMenuEntry(ctx, db, "Monday")
	require.NoError(t, err)
	require.Equal(t, 1, *got.UpdatedBy)

	db.QueryFn = func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
		require.Equal(t, model.Days, args[0])
		return &database.FakeRows{Records: [][]any{
			{"Monday", "a", "b", "c", nil, now},
			{"Sunday", "a", "b", "c", nil, now},
		}}, nil
	}
	list, err := ListMenuEntries(ctx, db)
	require.NoError(t, err)
	require.Equal(t, "Sunday", list[1].Day)
	require.Nil(t, list[1].UpdatedBy)

	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	require.ErrorIs(t, DeleteMenuEntry(ctx, db, "Friday"), apperr.ErrNotFound)
	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	require.NoError(t, DeleteMenuEntry(ctx, db, "Friday"))
	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("exec")
	}
	require.Error(t, DeleteMenuEntry(ctx, db, "Friday"))
}
