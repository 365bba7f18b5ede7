package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	for _, in := range []string{"monday", "MONDAY", " Monday ", "mOnDaY"} {
		day, err := ParseDay(in)
		require.NoError(t, err, in)
		require.Equal(t, "Monday", day)
	}
	_, err := ParseDay("Funday")
	require.Error(t, err)
	_, err = ParseDay("")
	require.Error(t, err)
}

func TestDayOf(t *testing.T) {
	require.Equal(t, "Sunday", DayOf(time.Sunday))
	require.Equal(t, "Monday", DayOf(time.Monday))
	require.Equal(t, "Wednesday", DayOf(time.Wednesday))
	require.Equal(t, "Saturday", DayOf(time.Saturday))
	require.Equal(t, 6, DayIndex("Sunday"))
	require.Equal(t, -1, DayIndex("monday"))
}

func TestRole(t *testing.T) {
	require.Equal(t, RoleAdmin, User{IsAdmin: true}.Role())
	require.Equal(t, RoleStandard, User{}.Role())
	require.True(t, RoleAdmin.IsAdmin())
	require.False(t, RoleStandard.IsAdmin())
}

func TestTallyMeals(t *testing.T) {
	counts := TallyMeals([]Booking{
		{Breakfast: true, Lunch: true, Dinner: false},
		{Breakfast: true, Lunch: false, Dinner: false},
		{Breakfast: false, Lunch: true, Dinner: true},
		{},
	})
	require.Equal(t, MealCounts{Breakfast: 2, Lunch: 2, Dinner: 1, TotalBookings: 4}, counts)
	require.Equal(t, MealCounts{}, TallyMeals(nil))
}

func TestPricesTotal(t *testing.T) {
	p := Prices{Breakfast: 50, Lunch: 100, Dinner: 100}
	require.Equal(t, int64(2*50+3*100+1*100), p.Total(MealCounts{Breakfast: 2, Lunch: 3, Dinner: 1}))
	require.Zero(t, p.Total(MealCounts{}))
}
