package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100" example:"Alice"`
	Email    string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required,min=6" example:"Secret123!"`
	// 只有管理員的令牌可以建立管理員
	IsAdmin bool `json:"isAdmin" form:"isAdmin" example:"false"`
}
