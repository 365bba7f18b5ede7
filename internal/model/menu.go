package model

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Days 依週一到週日排序的菜單日
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var titleCaser = cases.Title(language.English)

type MenuEntry struct {
	Day       string    `db:"day" json:"day"`
	Breakfast string    `db:"breakfast" json:"breakfast"`
	Lunch     string    `db:"lunch" json:"lunch"`
	Dinner    string    `db:"dinner" json:"dinner"`
	UpdatedBy *int      `db:"updated_by" json:"updatedBy,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ParseDay 將 "monday"、"MONDAY" 等輸入轉成標準名稱 "Monday"
func ParseDay(s string) (string, error) {
	day := titleCaser.String(strings.TrimSpace(s))
	if DayIndex(day) < 0 {
		return "", fmt.Errorf("unknown day %q", s)
	}
	return day, nil
}

// DayIndex 回傳 day 在 Days 中的位置，不存在時回傳 -1
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// DayOf 將 time.Weekday 轉成菜單日名稱
func DayOf(w time.Weekday) string {
	// time.Sunday == 0
	return Days[(int(w)+6)%7]
}
