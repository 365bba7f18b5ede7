package service

import (
	"context"
	"errors"
	"time"

	"mess-booking/internal/apperr"
	"mess-booking/internal/database"
	"mess-booking/internal/metrics"
	"mess-booking/internal/model"
	"mess-booking/internal/store"
)

var (
	upsertBooking       = store.UpsertBooking
	getBookingForDate   = store.GetBookingForDate
	listBookingsForUser = store.ListBookingsForUser
	listBookingsForDate = store.ListBookingsForDate
	countMealsForDate   = store.CountMealsForDate
)

// Ledger 管理每位使用者每天一筆的訂餐紀錄。
// 傳入的日期以其自身時區的年月日為準；由 ParseDate 或 Today 取得。
type Ledger struct {
	db  database.DB
	loc *time.Location
}

func NewLedger(db database.DB, loc *time.Location) *Ledger {
	return &Ledger{db: db, loc: loc}
}

// Today 回傳服務時區的今天
func (l *Ledger) Today() time.Time {
	return NormalizeDate(timeNow(), l.loc)
}

// ParseDate 以服務時區解析日期字串
func (l *Ledger) ParseDate(s string) (time.Time, error) {
	return ParseDate(s, l.loc)
}

// Upsert 建立或更新 (userID, date) 的訂餐；回傳的 bool 表示是否為新建
func (l *Ledger) Upsert(ctx context.Context, userID int, date time.Time, flags model.MealFlags) (*model.Booking, bool, error) {
	b, created, err := upsertBooking(ctx, l.db, userID, midnight(date), flags)
	if err != nil {
		return nil, false, err
	}
	metrics.RecordBookingUpsert(created)
	return b, created, nil
}

// ForDate 查詢某天的訂餐；沒有時 found 為 false
func (l *Ledger) ForDate(ctx context.Context, userID int, date time.Time) (*model.Booking, bool, error) {
	from, to := DayRange(date)
	b, err := getBookingForDate(ctx, l.db, userID, from, to)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (l *Ledger) ListForUser(ctx context.Context, userID int) ([]model.Booking, error) {
	return listBookingsForUser(ctx, l.db, userID)
}

func (l *Ledger) ListForDate(ctx context.Context, date time.Time) ([]model.BookingWithUser, error) {
	from, to := DayRange(date)
	return listBookingsForDate(ctx, l.db, from, to)
}

func (l *Ledger) CountForDate(ctx context.Context, date time.Time) (model.MealCounts, error) {
	from, to := DayRange(date)
	return countMealsForDate(ctx, l.db, from, to)
}
