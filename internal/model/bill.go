package model

import "time"

// Prices 為每餐單價 (整數貨幣單位)
type Prices struct {
	Breakfast int64 `json:"breakfast"`
	Lunch     int64 `json:"lunch"`
	Dinner    int64 `json:"dinner"`
}

// Total 依各餐數量計算總額
func (p Prices) Total(c MealCounts) int64 {
	return int64(c.Breakfast)*p.Breakfast + int64(c.Lunch)*p.Lunch + int64(c.Dinner)*p.Dinner
}

// Bill 是某使用者某月份的帳單快照，產生後不再變動 (除了 IsPaid)
type Bill struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"userId"`
	Month          int       `db:"month" json:"month"`
	Year           int       `db:"year" json:"year"`
	BreakfastCount int       `db:"breakfast_count" json:"breakfastCount"`
	LunchCount     int       `db:"lunch_count" json:"lunchCount"`
	DinnerCount    int       `db:"dinner_count" json:"dinnerCount"`
	BreakfastPrice int64     `db:"breakfast_price" json:"breakfastPrice"`
	LunchPrice     int64     `db:"lunch_price" json:"lunchPrice"`
	DinnerPrice    int64     `db:"dinner_price" json:"dinnerPrice"`
	TotalAmount    int64     `db:"total_amount" json:"totalAmount"`
	IsPaid         bool      `db:"is_paid" json:"isPaid"`
	GeneratedAt    time.Time `db:"generated_at" json:"generatedAt"`
}

type BillWithUser struct {
	Bill
	UserName  string `db:"name" json:"userName"`
	UserEmail string `db:"email" json:"userEmail"`
}
