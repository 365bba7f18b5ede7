// Package store 放置直接對 PostgreSQL 下 SQL 的函式。
// 每個函式都以 "函式名: 原始錯誤" 包裝錯誤；查無資料對應 apperr.ErrNotFound，
// unique constraint 衝突對應 apperr.ErrConflict。
package store

import (
	"errors"
	"fmt"

	"mess-booking/internal/apperr"

	"github.com/jackc/pgx/v5"
)

// scanner 同時涵蓋 pgx.Row 與 pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

func wrap(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	case apperr.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
