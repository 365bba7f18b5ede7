package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mess-booking/internal/apperr"
	"mess-booking/internal/cache"
	"mess-booking/internal/database"
	"mess-booking/internal/model"

	"github.com/redis/go-redis/v9"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// memCache 是以 map 實作的 FakeCache
func memCache(data map[string][]byte) *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			v, ok := data[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(string(v), nil)
		},
		SetFn: func(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
			data[key] = value.([]byte)
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			for _, k := range keys {
				delete(data, k)
			}
			return redis.NewIntResult(int64(len(keys)), nil)
		},
	}
}

func TestMenuToday(t *testing.T) {
	t.Cleanup(restore)
	getMenuEntry = func(_ context.Context, _ database.DB, day string) (*model.MenuEntry, error) {
		if day == "Wednesday" {
			return &model.MenuEntry{Day: day, Breakfast: "Poha"}, nil
		}
		return nil, fmt.Errorf("GetMenuEntry: %w", apperr.ErrNotFound)
	}
	log, _ := logtest.NewNullLogger()
	m := NewMenu(nil, nil, time.Minute, time.UTC, log)

	// 2025-03-05 是星期三
	timeNow = fixedNow(time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC))
	entry, err := m.Today(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Wednesday", entry.Day)

	timeNow = fixedNow(time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC))
	_, err = m.Today(context.Background())
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, "No menu found for today", err.Error())

	// 服務時區已跨到星期四
	ist := time.FixedZone("IST", 5*3600+1800)
	m = NewMenu(nil, nil, time.Minute, ist, log)
	timeNow = fixedNow(time.Date(2025, 3, 5, 20, 0, 0, 0, time.UTC))
	_, err = m.Today(context.Background())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMenuForDayUsesCache(t *testing.T) {
	t.Cleanup(restore)
	data := map[string][]byte{}
	calls := 0
	getMenuEntry = func(_ context.Context, _ database.DB, day string) (*model.MenuEntry, error) {
		calls++
		return &model.MenuEntry{Day: day, Breakfast: "Idli", Lunch: "Rice", Dinner: "Roti"}, nil
	}
	log, _ := logtest.NewNullLogger()
	m := NewMenu(nil, memCache(data), time.Minute, time.UTC, log)
	ctx := context.Background()

	entry, err := m.ForDay(ctx, "monday")
	require.NoError(t, err)
	require.Equal(t, "Monday", entry.Day)
	require.Contains(t, data, "menu:day:Monday")

	entry, err = m.ForDay(ctx, "MONDAY")
	require.NoError(t, err)
	require.Equal(t, "Idli", entry.Breakfast)
	require.Equal(t, 1, calls)

	_, err = m.ForDay(ctx, "Funday")
	require.ErrorIs(t, err, apperr.ErrValidation)

	getMenuEntry = func(context.Context, database.DB, string) (*model.MenuEntry, error) {
		return nil, fmt.Errorf("GetMenuEntry: %w", apperr.ErrNotFound)
	}
	_, err = m.ForDay(ctx, "Tuesday")
	require.Equal(t, "Menu not found for this day", err.Error())
	require.NotContains(t, data, "menu:day:Tuesday")
}

func TestMenuCacheFailuresAreBypassed(t *testing.T) {
	t.Cleanup(restore)
	listMenuEntries = func(context.Context, database.DB) ([]model.MenuEntry, error) {
		return []model.MenuEntry{{Day: "Monday"}, {Day: "Tuesday"}}, nil
	}
	c := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("redis down"))
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("redis down"))
		},
	}
	log, hook := logtest.NewNullLogger()
	m := NewMenu(nil, c, time.Minute, time.UTC, log)

	entries, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Len(t, hook.AllEntries(), 2)

	data := map[string][]byte{menuAllKey: []byte("{not json")}
	m = NewMenu(nil, memCache(data), time.Minute, time.UTC, log)
	entries, err = m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = m.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Tuesday", entries[1].Day)

	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("encode") }
	delete(data, menuAllKey)
	_, err = m.List(context.Background())
	require.NoError(t, err)
	require.NotContains(t, data, menuAllKey)
}

func TestMenuUpsert(t *testing.T) {
	t.Cleanup(restore)
	data := map[string][]byte{menuAllKey: []byte("[]"), "menu:day:Friday": []byte("{}"), "menu:day:Monday": []byte("{}")}
	var saved *model.MenuEntry
	upsertMenuEntry = func(_ context.Context, _ database.DB, e *model.MenuEntry) (bool, error) {
		saved = e
		return true, nil
	}
	log, _ := logtest.NewNullLogger()
	m := NewMenu(nil, memCache(data), time.Minute, time.UTC, log)

	entry, created, err := m.Upsert(context.Background(), "friday", "<b>Dosa</b>", " Rajma Chawal ", "Paneer<script>alert(1)</script>", 3)
	require.NoError(t, err)
	require.True(t, created)
	require.Same(t, saved, entry)
	require.Equal(t, "Friday", entry.Day)
	require.Equal(t, "Dosa", entry.Breakfast)
	require.Equal(t, "Rajma Chawal", entry.Lunch)
	require.Equal(t, "Paneer", entry.Dinner)
	require.Equal(t, 3, *entry.UpdatedBy)
	require.NotContains(t, data, menuAllKey)
	require.NotContains(t, data, "menu:day:Friday")
	require.Contains(t, data, "menu:day:Monday")

	_, _, err = m.Upsert(context.Background(), "Someday", "a", "b", "c", 3)
	require.ErrorIs(t, err, apperr.ErrValidation)
	_, _, err = m.Upsert(context.Background(), "Monday", "<i></i>", "b", "c", 3)
	require.ErrorIs(t, err, apperr.ErrValidation)

	upsertMenuEntry = func(context.Context, database.DB, *model.MenuEntry) (bool, error) { return false, errors.New("db") }
	_, _, err = m.Upsert(context.Background(), "Monday", "a", "b", "c", 3)
	require.Error(t, err)
	require.Contains(t, data, "menu:day:Monday")
}

func TestMenuDelete(t *testing.T) {
	t.Cleanup(restore)
	data := map[string][]byte{"menu:day:Sunday": []byte("{}")}
	deleteMenuEntry = func(_ context.Context, _ database.DB, day string) error {
		if day == "Saturday" {
			return fmt.Errorf("DeleteMenuEntry: %w", apperr.ErrNotFound)
		}
		return nil
	}
	log, _ := logtest.NewNullLogger()
	m := NewMenu(nil, memCache(data), time.Minute, time.UTC, log)

	require.NoError(t, m.Delete(context.Background(), "sunday"))
	require.NotContains(t, data, "menu:day:Sunday")

	err := m.Delete(context.Background(), "Saturday")
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, "Menu not found", err.Error())

	require.ErrorIs(t, m.Delete(context.Background(), "x"), apperr.ErrValidation)
}
