package store

import (
	"context"

	"mess-booking/internal/database"
	"mess-booking/internal/model"

	"github.com/jackc/pgx/v5"
)

const menuColumns = `day, breakfast, lunch, dinner, updated_by, updated_at`

func scanMenuEntry(s scanner, m *model.MenuEntry) error {
	return s.Scan(&m.Day, &m.Breakfast, &m.Lunch, &m.Dinner, &m.UpdatedBy, &m.UpdatedAt)
}

// UpsertMenuEntry 以 day 為鍵新增或覆寫菜單，回傳是否為新建
func UpsertMenuEntry(ctx context.Context, db database.DB, m *model.MenuEntry) (bool, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO menu_entries (day, breakfast, lunch, dinner, updated_by, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (day) DO UPDATE SET
		     breakfast  = EXCLUDED.breakfast,
		     lunch      = EXCLUDED.lunch,
		     dinner     = EXCLUDED.dinner,
		     updated_by = EXCLUDED.updated_by,
		     updated_at = now()
		 RETURNING updated_at, (xmax = 0) AS inserted`,
		m.Day,
		m.Breakfast,
		m.Lunch,
		m.Dinner,
		m.UpdatedBy,
	)
	var inserted bool
	if err := row.Scan(&m.UpdatedAt, &inserted); err != nil {
		return false, wrap("UpsertMenuEntry", err)
	}
	return inserted, nil
}

func GetMenuEntry(ctx context.Context, db database.DB, day string) (*model.MenuEntry, error) {
	row := db.QueryRow(ctx,
		`SELECT `+menuColumns+` FROM menu_entries WHERE day = $1`,
		day,
	)
	m := &model.MenuEntry{}
	if err := scanMenuEntry(row, m); err != nil {
		return nil, wrap("GetMenuEntry", err)
	}
	return m, nil
}

// ListMenuEntries 依週一到週日排序
func ListMenuEntries(ctx context.Context, db database.DB) ([]model.MenuEntry, error) {
	rows, err := db.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_entries
		 ORDER BY array_position($1::text[], day)`,
		model.Days,
	)
	if err != nil {
		return nil, wrap("ListMenuEntries", err)
	}
	defer rows.Close()

	entries := []model.MenuEntry{}
	for rows.Next() {
		var m model.MenuEntry
		if err := scanMenuEntry(rows, &m); err != nil {
			return nil, wrap("ListMenuEntries", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListMenuEntries", err)
	}
	return entries, nil
}

// DeleteMenuEntry 刪除某天菜單；不存在時回傳 ErrNotFound
func DeleteMenuEntry(ctx context.Context, db database.DB, day string) error {
	tag, err := db.Exec(ctx, `DELETE FROM menu_entries WHERE day = $1`, day)
	if err != nil {
		return wrap("DeleteMenuEntry", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteMenuEntry", pgx.ErrNoRows)
	}
	return nil
}
