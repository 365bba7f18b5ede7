package client

import (
	"context"
	"fmt"
	"net/http"

	"mess-booking/internal/api"
	"mess-booking/internal/model"
)

func (c *Client) GenerateBill(ctx context.Context, s Session, userID, month, year int) (*model.Bill, error) {
	var res model.Bill
	req := api.GenerateBillRequest{UserID: userID, Month: month, Year: year}
	if err := c.authed(ctx, http.MethodPost, "/api/bills/generate", s, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GenerateAllBills(ctx context.Context, s Session, month, year int) (*api.GenerateAllBillsResponse, error) {
	var res api.GenerateAllBillsResponse
	req := api.GenerateAllBillsRequest{Month: month, Year: year}
	if err := c.authed(ctx, http.MethodPost, "/api/bills/generate-all", s, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) MyBills(ctx context.Context, s Session) ([]model.Bill, error) {
	var res []model.Bill
	if err := c.authed(ctx, http.MethodGet, "/api/bills/my-bills", s, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) UserBills(ctx context.Context, s Session, userID int) ([]model.Bill, error) {
	var res []model.Bill
	if err := c.authed(ctx, http.MethodGet, fmt.Sprintf("/api/bills/user/%d", userID), s, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Bill(ctx context.Context, s Session, id int) (*model.Bill, error) {
	var res model.Bill
	if err := c.authed(ctx, http.MethodGet, fmt.Sprintf("/api/bills/%d", id), s, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AllBills(ctx context.Context, s Session) ([]model.BillWithUser, error) {
	var res []model.BillWithUser
	if err := c.authed(ctx, http.MethodGet, "/api/bills", s, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) MarkPaid(ctx context.Context, s Session, id int) (*model.Bill, error) {
	var res model.Bill
	if err := c.authed(ctx, http.MethodPut, fmt.Sprintf("/api/bills/%d/pay", id), s, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
