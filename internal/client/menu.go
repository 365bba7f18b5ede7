package client

import (
	"context"
	"net/http"

	"mess-booking/internal/api"
	"mess-booking/internal/model"
)

func (c *Client) WeeklyMenu(ctx context.Context) ([]model.MenuEntry, error) {
	var res []model.MenuEntry
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// TodayMenu 今天沒有菜單時 found 為 false
func (c *Client) TodayMenu(ctx context.Context) (*model.MenuEntry, bool, error) {
	var res model.MenuEntry
	err := c.do(ctx, http.MethodGet, "/api/menu/today", nil, nil, &res)
	if IsStatus(err, http.StatusNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &res, true, nil
}

func (c *Client) MenuForDay(ctx context.Context, day string) (*model.MenuEntry, error) {
	var res model.MenuEntry
	if err := c.do(ctx, http.MethodGet, "/api/menu/"+pathDay(day), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SetMenu(ctx context.Context, s Session, req api.MenuRequest) (*model.MenuEntry, error) {
	var res model.MenuEntry
	if err := c.authed(ctx, http.MethodPost, "/api/menu", s, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteMenu(ctx context.Context, s Session, day string) error {
	return c.authed(ctx, http.MethodDelete, "/api/menu/"+pathDay(day), s, nil, nil)
}
