package service

import (
	"fmt"
	"strings"
	"time"

	"mess-booking/internal/apperr"
)

// 日期一律以「當地日期的 UTC 午夜」表示，對應資料庫的 DATE 欄位。

// NormalizeDate 取 t 在 loc 時區的日期
func NormalizeDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// midnight 截掉 t 的時間部分，保留 t 自身時區下的日期
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayRange 回傳 [day, 隔天) 的半開區間
func DayRange(day time.Time) (time.Time, time.Time) {
	from := midnight(day)
	return from, from.AddDate(0, 0, 1)
}

// MonthRange 回傳該月第一天與最後一天 (含)
func MonthRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, apperr.New(apperr.ErrValidation, "month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, apperr.New(apperr.ErrValidation, "invalid year")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// ParseDate 接受 "2006-01-02" 或 RFC3339；帶時間的輸入會先換算到 loc 再取日期
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperr.New(apperr.ErrValidation, fmt.Sprintf("invalid date %q", s))
	}
	return NormalizeDate(t, loc), nil
}
