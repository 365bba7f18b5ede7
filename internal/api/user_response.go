package api

import (
	"time"

	"mess-booking/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"isAdmin" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2025-03-01T08:00:00Z"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse 註冊與登入成功時回傳使用者資料與令牌
// swagger:model api.AuthResponse
type AuthResponse struct {
	UserResponse
	Token string `json:"token" example:"eyJhbGciOi..."`
}

// swagger:model api.ResetUserPasswordResponse
type ResetUserPasswordResponse struct {
	// 新的隨機密碼
	NewPassword string `json:"newPassword" example:"Abc123!@#Xyz"`
}
