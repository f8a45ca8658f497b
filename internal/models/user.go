package models

import "time"

// Role values carried on users and in JWT claims.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// UserModel is an admin-area account.
type UserModel struct {
	Base
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Password      string     `json:"-"        gorm:"not null"`
	Role          string     `json:"role"     gorm:"default:admin"`
	LastLoginTime *time.Time `json:"lastLoginTime"`
	LastLoginIP   string     `json:"lastLoginIp"`
}

func (UserModel) TableName() string { return "users" }
