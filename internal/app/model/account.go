package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Name          string    `gorm:"not null" json:"name"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	TermsAccepted bool      `gorm:"not null" json:"terms_accepted"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	IsAdmin       bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// Role maps the admin flag onto the role claim carried by tokens.
func (a *Account) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
