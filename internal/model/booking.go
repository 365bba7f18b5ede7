package model

import "time"

// Booking 是使用者某一天的訂餐紀錄；Date 為當地日期的午夜 (UTC 表示)
type Booking struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId"`
	Date      time.Time `db:"booking_date" json:"date"`
	Breakfast bool      `db:"breakfast" json:"breakfast"`
	Lunch     bool      `db:"lunch" json:"lunch"`
	Dinner    bool      `db:"dinner" json:"dinner"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type BookingWithUser struct {
	Booking
	UserName  string `db:"name" json:"userName"`
	UserEmail string `db:"email" json:"userEmail"`
}

// MealFlags 是部分更新用的旗標；nil 代表未指定
type MealFlags struct {
	Breakfast *bool
	Lunch     *bool
	Dinner    *bool
}

type MealCounts struct {
	Breakfast     int `json:"breakfastCount"`
	Lunch         int `json:"lunchCount"`
	Dinner        int `json:"dinnerCount"`
	TotalBookings int `json:"totalBookings"`
}

// TallyMeals 分別計算各餐被訂的天數；三餐皆不訂的紀錄只計入 TotalBookings
func TallyMeals(bookings []Booking) MealCounts {
	var c MealCounts
	for _, b := range bookings {
		c.TotalBookings++
		if b.Breakfast {
			c.Breakfast++
		}
		if b.Lunch {
			c.Lunch++
		}
		if b.Dinner {
			c.Dinner++
		}
	}
	return c
}
