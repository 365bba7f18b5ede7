package store

import (
	"context"
	"time"

	"mess-booking/internal/database"
	"mess-booking/internal/model"
)

const bookingColumns = `b.id, b.user_id, b.booking_date, b.breakfast, b.lunch, b.dinner, b.created_at`

func scanBooking(s scanner, b *model.Booking, extra ...any) error {
	dest := append([]any{&b.ID, &b.UserID, &b.Date, &b.Breakfast, &b.Lunch, &b.Dinner, &b.CreatedAt}, extra...)
	return s.Scan(dest...)
}

// UpsertBooking 以單一敘述新增或更新 (user, date) 的訂餐。
// 新增時未指定的餐別預設為 true；更新時未指定的餐別保留原值。
// 回傳的 bool 表示這次是否新增了一筆。
func UpsertBooking(ctx context.Context, db database.DB, userID int, date time.Time, f model.MealFlags) (*model.Booking, bool, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO bookings AS b (user_id, booking_date, breakfast, lunch, dinner)
		 VALUES ($1, $2,
		         COALESCE($3::boolean, TRUE),
		         COALESCE($4::boolean, TRUE),
		         COALESCE($5::boolean, TRUE))
		 ON CONFLICT (user_id, booking_date) DO UPDATE SET
		     breakfast = COALESCE($3::boolean, b.breakfast),
		     lunch     = COALESCE($4::boolean, b.lunch),
		     dinner    = COALESCE($5::boolean, b.dinner)
		 RETURNING `+bookingColumns+`, (b.xmax = 0) AS inserted`,
		userID,
		date,
		f.Breakfast,
		f.Lunch,
		f.Dinner,
	)
	b := &model.Booking{}
	var inserted bool
	if err := scanBooking(row, b, &inserted); err != nil {
		return nil, false, wrap("UpsertBooking", err)
	}
	return b, inserted, nil
}

// GetBookingForDate 查詢 [from, to) 之間 userID 的訂餐
func GetBookingForDate(ctx context.Context, db database.DB, userID int, from, to time.Time) (*model.Booking, error) {
	row := db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b
		 WHERE b.user_id = $1 AND b.booking_date >= $2 AND b.booking_date < $3`,
		userID,
		from,
		to,
	)
	b := &model.Booking{}
	if err := scanBooking(row, b); err != nil {
		return nil, wrap("GetBookingForDate", err)
	}
	return b, nil
}

// ListBookingsForUser 依日期由新到舊
func ListBookingsForUser(ctx context.Context, db database.DB, userID int) ([]model.Booking, error) {
	return queryBookings(ctx, db, "ListBookingsForUser",
		`SELECT `+bookingColumns+` FROM bookings b
		 WHERE b.user_id = $1
		 ORDER BY b.booking_date DESC`,
		userID,
	)
}

// ListBookingsForUserBetween 查詢 [first, last] (含兩端) 之間的訂餐
func ListBookingsForUserBetween(ctx context.Context, db database.DB, userID int, first, last time.Time) ([]model.Booking, error) {
	return queryBookings(ctx, db, "ListBookingsForUserBetween",
		`SELECT `+bookingColumns+` FROM bookings b
		 WHERE b.user_id = $1 AND b.booking_date >= $2 AND b.booking_date <= $3
		 ORDER BY b.booking_date`,
		userID,
		first,
		last,
	)
}

func queryBookings(ctx context.Context, db database.DB, op, sql string, args ...any) ([]model.Booking, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, wrap(op, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return bookings, nil
}

// ListBookingsForDate 查詢 [from, to) 之間所有人的訂餐，附上使用者名稱與 email
func ListBookingsForDate(ctx context.Context, db database.DB, from, to time.Time) ([]model.BookingWithUser, error) {
	rows, err := db.Query(ctx,
		`SELECT `+bookingColumns+`, u.name, u.email
		 FROM bookings b JOIN users u ON u.id = b.user_id
		 WHERE b.booking_date >= $1 AND b.booking_date < $2
		 ORDER BY u.name, b.id`,
		from,
		to,
	)
	if err != nil {
		return nil, wrap("ListBookingsForDate", err)
	}
	defer rows.Close()

	bookings := []model.BookingWithUser{}
	for rows.Next() {
		var b model.BookingWithUser
		if err := scanBooking(rows, &b.Booking, &b.UserName, &b.UserEmail); err != nil {
			return nil, wrap("ListBookingsForDate", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListBookingsForDate", err)
	}
	return bookings, nil
}

// CountMealsForDate 統計 [from, to) 之間各餐被訂的數量；沒有訂餐時全為 0
func CountMealsForDate(ctx context.Context, db database.DB, from, to time.Time) (model.MealCounts, error) {
	row := db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE breakfast),
		        COUNT(*) FILTER (WHERE lunch),
		        COUNT(*) FILTER (WHERE dinner),
		        COUNT(*)
		 FROM bookings
		 WHERE booking_date >= $1 AND booking_date < $2`,
		from,
		to,
	)
	var c model.MealCounts
	if err := row.Scan(&c.Breakfast, &c.Lunch, &c.Dinner, &c.TotalBookings); err != nil {
		return model.MealCounts{}, wrap("CountMealsForDate", err)
	}
	return c, nil
}
