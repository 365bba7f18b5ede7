package model

import "time"

// Role 只有兩種：一般使用者與管理員
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Role 由 is_admin 欄位推得
func (u User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleStandard
}
