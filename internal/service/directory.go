package service

import (
	"context"
	"errors"
	"strings"

	"mess-booking/internal/apperr"
	"mess-booking/internal/database"
	"mess-booking/internal/model"
	"mess-booking/internal/store"
)

var (
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	getUserByEmail     = store.GetUserByEmail
	listUsers          = store.ListUsers
	updateUserPassword = store.UpdateUserPassword
)

const (
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid email or password"
)

// AuthResult 是註冊或登入成功後回傳的令牌與使用者資料
type AuthResult struct {
	Token string
	User  model.User
}

// Directory 管理使用者身分與密碼，並簽發令牌
type Directory struct {
	db     database.DB
	tokens *Tokens
}

func NewDirectory(db database.DB, tokens *Tokens) *Directory {
	return &Directory{db: db, tokens: tokens}
}

// Register 建立使用者並簽發令牌；email 以小寫儲存，重複時回傳 ErrConflict
func (d *Directory) Register(ctx context.Context, name, email, password string, isAdmin bool) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, apperr.New(apperr.ErrValidation, "name, email and password are required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := createUser(ctx, d.db, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	if errors.Is(err, apperr.ErrConflict) {
		return nil, apperr.New(apperr.ErrConflict, "User already exists")
	}
	if err != nil {
		return nil, err
	}
	return d.issue(*user)
}

// Login 驗證 email 與密碼；失敗一律回傳 ErrUnauthorized
func (d *Directory) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := getUserByEmail(ctx, d.db, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.New(apperr.ErrUnauthorized, msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if err := AuthenticateUser(*user, password); err != nil {
		return nil, apperr.New(apperr.ErrUnauthorized, msgInvalidCredentials)
	}
	return d.issue(*user)
}

func (d *Directory) issue(user model.User) (*AuthResult, error) {
	token, err := d.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (d *Directory) Get(ctx context.Context, userID int) (*model.User, error) {
	user, err := getUserByID(ctx, d.db, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.New(apperr.ErrNotFound, msgUserNotFound)
	}
	return user, err
}

func (d *Directory) List(ctx context.Context) ([]model.User, error) {
	return listUsers(ctx, d.db)
}

// ChangePassword 驗證舊密碼後更新
func (d *Directory) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperr.New(apperr.ErrValidation, "new password is required")
	}
	user, err := d.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := AuthenticateUser(*user, oldPassword); err != nil {
		return apperr.New(apperr.ErrValidation, "Current password is incorrect")
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return updateUserPassword(ctx, d.db, userID, hash)
}

// ResetPassword 為使用者產生新的隨機密碼並回傳明文
func (d *Directory) ResetPassword(ctx context.Context, userID int) (string, error) {
	pwd, err := GenerateRandomPassword(12)
	if err != nil {
		return "", err
	}
	hash, err := HashPassword(pwd)
	if err != nil {
		return "", err
	}
	if err := updateUserPassword(ctx, d.db, userID, hash); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.New(apperr.ErrNotFound, msgUserNotFound)
		}
		return "", err
	}
	return pwd, nil
}
