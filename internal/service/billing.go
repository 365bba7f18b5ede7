package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"mess-booking/internal/apperr"
	"mess-booking/internal/database"
	"mess-booking/internal/metrics"
	"mess-booking/internal/model"
	"mess-booking/internal/store"
	"mess-booking/internal/worker"

	"github.com/sirupsen/logrus"
)

var (
	billExists          = store.BillExists
	insertBill          = store.InsertBill
	listBookingsBetween = store.ListBookingsForUserBetween
	getBill             = store.GetBill
	listBillsForUser    = store.ListBillsForUser
	listAllBills        = store.ListAllBills
	markBillPaid        = store.MarkBillPaid
	newPool             = worker.NewPool
)

const (
	msgBillExists   = "Bill already exists for this month"
	msgBillNotFound = "Bill not found"
)

// BatchResult 是一次批次產生帳單的結果
type BatchResult struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Billing 由訂餐紀錄產生每月帳單；只讀取 bookings，不修改
type Billing struct {
	db      database.DB
	prices  model.Prices
	workers int
	loc     *time.Location
	log     logrus.FieldLogger
}

func NewBilling(db database.DB, prices model.Prices, workers int, loc *time.Location, log logrus.FieldLogger) *Billing {
	return &Billing{db: db, prices: prices, workers: workers, loc: loc, log: log}
}

func (b *Billing) Prices() model.Prices { return b.prices }

// Generate 為 userID 產生 month/year 的帳單快照。
// 同月份已有帳單時回傳 ErrConflict；沒有訂餐時仍建立金額為 0 的帳單。
func (b *Billing) Generate(ctx context.Context, userID, month, year int) (*model.Bill, error) {
	first, last, err := MonthRange(month, year)
	if err != nil {
		return nil, err
	}
	if _, err := getUserByID(ctx, b.db, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "User not found")
		}
		return nil, err
	}

	exists, err := billExists(ctx, b.db, userID, month, year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.ErrConflict, msgBillExists)
	}

	bookings, err := listBookingsBetween(ctx, b.db, userID, first, last)
	if err != nil {
		return nil, err
	}
	counts := model.TallyMeals(bookings)

	bill := &model.Bill{
		UserID:         userID,
		Month:          month,
		Year:           year,
		BreakfastCount: counts.Breakfast,
		LunchCount:     counts.Lunch,
		DinnerCount:    counts.Dinner,
		BreakfastPrice: b.prices.Breakfast,
		LunchPrice:     b.prices.Lunch,
		DinnerPrice:    b.prices.Dinner,
		TotalAmount:    b.prices.Total(counts),
	}
	if err := insertBill(ctx, b.db, bill); err != nil {
		// 併發產生時由 unique constraint 擋下
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.New(apperr.ErrConflict, msgBillExists)
		}
		return nil, err
	}

	metrics.RecordBill("generated")
	b.log.WithFields(logrus.Fields{
		"user_id": userID,
		"month":   month,
		"year":    year,
		"total":   bill.TotalAmount,
	}).Info("bill generated")
	return bill, nil
}

// GenerateAll 以 worker pool 為所有使用者產生帳單；已存在的帳單計為 skipped
func (b *Billing) GenerateAll(ctx context.Context, month, year int) (BatchResult, error) {
	if _, _, err := MonthRange(month, year); err != nil {
		return BatchResult{}, err
	}
	users, err := listUsers(ctx, b.db)
	if err != nil {
		return BatchResult{}, err
	}

	var (
		mu  sync.Mutex
		res BatchResult
	)
	pool := newPool(b.workers, func(r any) {
		mu.Lock()
		defer mu.Unlock()
		res.Failed++
		metrics.RecordBill("failed")
		b.log.WithError(worker.PanicError(r)).Error("bill generation panicked")
	})
	for _, u := range users {
		userID := u.ID
		pool.Submit(func() {
			_, err := b.Generate(ctx, userID, month, year)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				res.Generated++
			case errors.Is(err, apperr.ErrConflict):
				res.Skipped++
				metrics.RecordBill("skipped")
			default:
				res.Failed++
				metrics.RecordBill("failed")
				b.log.WithError(err).WithField("user_id", userID).Error("bill generation failed")
			}
		})
	}
	pool.Stop()

	b.log.WithFields(logrus.Fields{
		"month":     month,
		"year":      year,
		"generated": res.Generated,
		"skipped":   res.Skipped,
		"failed":    res.Failed,
	}).Info("batch billing finished")
	return res, nil
}

// GeneratePreviousMonth 為所有使用者產生上個月 (服務時區) 的帳單
func (b *Billing) GeneratePreviousMonth(ctx context.Context) (BatchResult, error) {
	today := NormalizeDate(timeNow(), b.loc)
	prev := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return b.GenerateAll(ctx, int(prev.Month()), prev.Year())
}

// Get 取得帳單；只有擁有者或管理員可以查看
func (b *Billing) Get(ctx context.Context, billID, requesterID int, role model.Role) (*model.Bill, error) {
	bill, err := getBill(ctx, b.db, billID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.New(apperr.ErrNotFound, msgBillNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !role.IsAdmin() && bill.UserID != requesterID {
		return nil, apperr.New(apperr.ErrForbidden, "Not authorized to view this bill")
	}
	return bill, nil
}

// MarkPaid 將帳單設為已付款；已付款的帳單再次設定不會出錯
func (b *Billing) MarkPaid(ctx context.Context, billID int) (*model.Bill, error) {
	bill, err := markBillPaid(ctx, b.db, billID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.New(apperr.ErrNotFound, msgBillNotFound)
	}
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (b *Billing) ListForUser(ctx context.Context, userID int) ([]model.Bill, error) {
	return listBillsForUser(ctx, b.db, userID)
}

func (b *Billing) ListAll(ctx context.Context) ([]model.BillWithUser, error) {
	return listAllBills(ctx, b.db)
}
