// Package client 是 mess-booking API 的 Go 客戶端。
// 需要登入的呼叫都要傳入 Session，客戶端本身不保存任何登入狀態。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mess-booking/internal/api"
)

// Session 是登入後取得的令牌與使用者資料
type Session struct {
	Token string
	User  api.UserResponse
}

// IsAdmin 回傳 session 的使用者是否為管理員
func (s Session) IsAdmin() bool { return s.User.IsAdmin }

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError 是伺服器回傳的非 2xx 回應
type APIError struct {
	Status  int
	Message string
	body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// IsStatus 判斷 err 是否為指定狀態碼的 APIError
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

var errNoSession = errors.New("not logged in")

func (c *Client) do(ctx context.Context, method, path string, s *Session, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e api.ErrorResponse
		if json.Unmarshal(respBody, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(respBody))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message, body: respBody}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// authed 檢查 session 後呼叫 do
func (c *Client) authed(ctx context.Context, method, path string, s Session, in, out any) error {
	if s.Token == "" {
		return errNoSession
	}
	return c.do(ctx, method, path, &s, in, out)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil, nil)
}

func sessionFrom(res api.AuthResponse) Session {
	return Session{Token: res.Token, User: res.UserResponse}
}

// Register 以匿名身分註冊，回傳新帳號的 session
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	var res api.AuthResponse
	req := api.CreateUserRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users", nil, req, &res); err != nil {
		return Session{}, err
	}
	return sessionFrom(res), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var res api.AuthResponse
	req := api.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", nil, req, &res); err != nil {
		return Session{}, err
	}
	return sessionFrom(res), nil
}

// CreateUser 由管理員建立帳號，可指定 isAdmin
func (c *Client) CreateUser(ctx context.Context, s Session, req api.CreateUserRequest) (*api.UserResponse, error) {
	var res api.AuthResponse
	if err := c.authed(ctx, http.MethodPost, "/api/users", s, req, &res); err != nil {
		return nil, err
	}
	return &res.UserResponse, nil
}

func (c *Client) Profile(ctx context.Context, s Session) (*api.UserResponse, error) {
	var res api.UserResponse
	if err := c.authed(ctx, http.MethodGet, "/api/users/profile", s, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ChangePassword(ctx context.Context, s Session, oldPassword, newPassword string) error {
	req := api.UpdateMyPasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.authed(ctx, http.MethodPatch, "/api/users/profile/password", s, req, nil)
}

func (c *Client) ListUsers(ctx context.Context, s Session) ([]api.UserResponse, error) {
	var res []api.UserResponse
	if err := c.authed(ctx, http.MethodGet, "/api/users", s, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetUser(ctx context.Context, s Session, id int) (*api.UserResponse, error) {
	var res api.UserResponse
	if err := c.authed(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), s, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ResetPassword 回傳伺服器產生的新密碼
func (c *Client) ResetPassword(ctx context.Context, s Session, id int) (string, error) {
	var res api.ResetUserPasswordResponse
	if err := c.authed(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/reset-password", id), s, nil, &res); err != nil {
		return "", err
	}
	return res.NewPassword, nil
}

func pathDay(day string) string { return url.PathEscape(day) }
