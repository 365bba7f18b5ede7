package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"mess-booking/internal/apperr"
	"mess-booking/internal/cache"
	"mess-booking/internal/database"
	"mess-booking/internal/model"
	"mess-booking/internal/store"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	upsertMenuEntry = store.UpsertMenuEntry
	getMenuEntry    = store.GetMenuEntry
	listMenuEntries = store.ListMenuEntries
	deleteMenuEntry = store.DeleteMenuEntry
	jsonMarshal     = json.Marshal
	jsonUnmarshal   = json.Unmarshal
)

const menuAllKey = "menu:all"

func menuDayKey(day string) string { return "menu:day:" + day }

// Menu 管理每週菜單；讀取時先查 Redis，寫入後清除相關快取。
// 快取失敗只記 log，不影響結果。
type Menu struct {
	db     database.DB
	cache  cache.Cache
	ttl    time.Duration
	loc    *time.Location
	log    logrus.FieldLogger
	policy *bluemonday.Policy
}

// NewMenu 建立菜單服務；c 為 nil 時不使用快取
func NewMenu(db database.DB, c cache.Cache, ttl time.Duration, loc *time.Location, log logrus.FieldLogger) *Menu {
	return &Menu{
		db:     db,
		cache:  c,
		ttl:    ttl,
		loc:    loc,
		log:    log,
		policy: bluemonday.StrictPolicy(),
	}
}

func parseDay(day string) (string, error) {
	canonical, err := model.ParseDay(day)
	if err != nil {
		return "", apperr.New(apperr.ErrValidation, "Invalid day: must be one of "+strings.Join(model.Days, ", "))
	}
	return canonical, nil
}

func (m *Menu) sanitize(s string) string {
	return strings.TrimSpace(m.policy.Sanitize(s))
}

// Upsert 新增或覆寫某天的菜單，回傳的 bool 表示是否為新建
func (m *Menu) Upsert(ctx context.Context, day, breakfast, lunch, dinner string, updatedBy int) (*model.MenuEntry, bool, error) {
	canonical, err := parseDay(day)
	if err != nil {
		return nil, false, err
	}
	entry := &model.MenuEntry{
		Day:       canonical,
		Breakfast: m.sanitize(breakfast),
		Lunch:     m.sanitize(lunch),
		Dinner:    m.sanitize(dinner),
		UpdatedBy: &updatedBy,
	}
	if entry.Breakfast == "" || entry.Lunch == "" || entry.Dinner == "" {
		return nil, false, apperr.New(apperr.ErrValidation, "breakfast, lunch and dinner are required")
	}

	created, err := upsertMenuEntry(ctx, m.db, entry)
	if err != nil {
		return nil, false, err
	}
	m.invalidate(ctx, canonical)
	return entry, created, nil
}

func (m *Menu) ForDay(ctx context.Context, day string) (*model.MenuEntry, error) {
	canonical, err := parseDay(day)
	if err != nil {
		return nil, err
	}
	return m.forDay(ctx, canonical, "Menu not found for this day")
}

// Today 依服務時區的星期幾取得菜單
func (m *Menu) Today(ctx context.Context) (*model.MenuEntry, error) {
	day := model.DayOf(timeNow().In(m.loc).Weekday())
	return m.forDay(ctx, day, "No menu found for today")
}

func (m *Menu) forDay(ctx context.Context, day, notFound string) (*model.MenuEntry, error) {
	entry := &model.MenuEntry{}
	if m.cached(ctx, menuDayKey(day), entry) {
		return entry, nil
	}
	entry, err := getMenuEntry(ctx, m.db, day)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.New(apperr.ErrNotFound, notFound)
	}
	if err != nil {
		return nil, err
	}
	m.remember(ctx, menuDayKey(day), entry)
	return entry, nil
}

// List 依週一到週日排序回傳整週菜單
func (m *Menu) List(ctx context.Context) ([]model.MenuEntry, error) {
	var entries []model.MenuEntry
	if m.cached(ctx, menuAllKey, &entries) {
		return entries, nil
	}
	entries, err := listMenuEntries(ctx, m.db)
	if err != nil {
		return nil, err
	}
	m.remember(ctx, menuAllKey, entries)
	return entries, nil
}

func (m *Menu) Delete(ctx context.Context, day string) error {
	canonical, err := parseDay(day)
	if err != nil {
		return err
	}
	if err := deleteMenuEntry(ctx, m.db, canonical); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.New(apperr.ErrNotFound, "Menu not found")
		}
		return err
	}
	m.invalidate(ctx, canonical)
	return nil
}

func (m *Menu) cached(ctx context.Context, key string, dst any) bool {
	if m.cache == nil {
		return false
	}
	raw, err := m.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.log.WithError(err).WithField("key", key).Warn("menu cache read failed")
		}
		return false
	}
	if err := jsonUnmarshal(raw, dst); err != nil {
		m.log.WithError(err).WithField("key", key).Warn("menu cache entry corrupt")
		return false
	}
	return true
}

func (m *Menu) remember(ctx context.Context, key string, v any) {
	if m.cache == nil {
		return
	}
	raw, err := jsonMarshal(v)
	if err != nil {
		m.log.WithError(err).WithField("key", key).Warn("menu cache encode failed")
		return
	}
	if err := m.cache.Set(ctx, key, raw, m.ttl).Err(); err != nil {
		m.log.WithError(err).WithField("key", key).Warn("menu cache write failed")
	}
}

func (m *Menu) invalidate(ctx context.Context, day string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Del(ctx, menuAllKey, menuDayKey(day)).Err(); err != nil {
		m.log.WithError(err).WithField("day", day).Warn("menu cache invalidation failed")
	}
}
