package store

import (
	"context"
	"errors"

	"mess-booking/internal/apperr"
	"mess-booking/internal/database"
	"mess-booking/internal/model"

	"github.com/jackc/pgx/v5"
)

const billColumns = `bl.id, bl.user_id, bl.month, bl.year,
	bl.breakfast_count, bl.lunch_count, bl.dinner_count,
	bl.breakfast_price, bl.lunch_price, bl.dinner_price,
	bl.total_amount, bl.is_paid, bl.generated_at`

func scanBill(s scanner, b *model.Bill, extra ...any) error {
	dest := append([]any{
		&b.ID, &b.UserID, &b.Month, &b.Year,
		&b.BreakfastCount, &b.LunchCount, &b.DinnerCount,
		&b.BreakfastPrice, &b.LunchPrice, &b.DinnerPrice,
		&b.TotalAmount, &b.IsPaid, &b.GeneratedAt,
	}, extra...)
	return s.Scan(dest...)
}

func BillExists(ctx context.Context, db database.DB, userID, month, year int) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bills WHERE user_id = $1 AND month = $2 AND year = $3)`,
		userID,
		month,
		year,
	).Scan(&exists)
	if err != nil {
		return false, wrap("BillExists", err)
	}
	return exists, nil
}

// InsertBill 寫入帳單快照並回填 id、is_paid、generated_at。
// 同一 (user, month, year) 已存在時不寫入，回傳 ErrConflict。
func InsertBill(ctx context.Context, db database.DB, b *model.Bill) error {
	row := db.QueryRow(ctx,
		`INSERT INTO bills (user_id, month, year,
		                    breakfast_count, lunch_count, dinner_count,
		                    breakfast_price, lunch_price, dinner_price,
		                    total_amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id, month, year) DO NOTHING
		 RETURNING id, is_paid, generated_at`,
		b.UserID, b.Month, b.Year,
		b.BreakfastCount, b.LunchCount, b.DinnerCount,
		b.BreakfastPrice, b.LunchPrice, b.DinnerPrice,
		b.TotalAmount,
	)
	err := row.Scan(&b.ID, &b.IsPaid, &b.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return wrap("InsertBill", apperr.ErrConflict)
	}
	if err != nil {
		return wrap("InsertBill", err)
	}
	return nil
}

func GetBill(ctx context.Context, db database.DB, billID int) (*model.Bill, error) {
	row := db.QueryRow(ctx,
		`SELECT `+billColumns+` FROM bills bl WHERE bl.id = $1`,
		billID,
	)
	b := &model.Bill{}
	if err := scanBill(row, b); err != nil {
		return nil, wrap("GetBill", err)
	}
	return b, nil
}

// ListBillsForUser 依 (year desc, month desc) 排序
func ListBillsForUser(ctx context.Context, db database.DB, userID int) ([]model.Bill, error) {
	rows, err := db.Query(ctx,
		`SELECT `+billColumns+` FROM bills bl
		 WHERE bl.user_id = $1
		 ORDER BY bl.year DESC, bl.month DESC`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListBillsForUser", err)
	}
	defer rows.Close()

	bills := []model.Bill{}
	for rows.Next() {
		var b model.Bill
		if err := scanBill(rows, &b); err != nil {
			return nil, wrap("ListBillsForUser", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListBillsForUser", err)
	}
	return bills, nil
}

// ListAllBills 附上使用者名稱與 email，依 (year desc, month desc) 排序
func ListAllBills(ctx context.Context, db database.DB) ([]model.BillWithUser, error) {
	rows, err := db.Query(ctx,
		`SELECT `+billColumns+`, u.name, u.email
		 FROM bills bl JOIN users u ON u.id = bl.user_id
		 ORDER BY bl.year DESC, bl.month DESC, u.name`,
	)
	if err != nil {
		return nil, wrap("ListAllBills", err)
	}
	defer rows.Close()

	bills := []model.BillWithUser{}
	for rows.Next() {
		var b model.BillWithUser
		if err := scanBill(rows, &b.Bill, &b.UserName, &b.UserEmail); err != nil {
			return nil, wrap("ListAllBills", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListAllBills", err)
	}
	return bills, nil
}

// MarkBillPaid 將帳單設為已付款；重複設定不會出錯
func MarkBillPaid(ctx context.Context, db database.DB, billID int) (*model.Bill, error) {
	row := db.QueryRow(ctx,
		`UPDATE bills bl SET is_paid = TRUE
		 WHERE bl.id = $1
		 RETURNING `+billColumns,
		billID,
	)
	b := &model.Bill{}
	if err := scanBill(row, b); err != nil {
		return nil, wrap("MarkBillPaid", err)
	}
	return b, nil
}
