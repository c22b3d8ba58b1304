package models

import (
	"time"
)

// UserRole is the closed set of actor roles. Role-gated operations switch
// exhaustively over these values.
type UserRole string

const (
	RoleWorkshop UserRole = "WORKSHOP"
	RoleVendor   UserRole = "VENDOR"
	RoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"unique;not null"`
	PhoneNumber  string    `json:"phone_number"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);default:'WORKSHOP'"`
	PasswordHash string    `json:"-" gorm:"not null"`
	APIToken     string    `json:"-" gorm:"column:api_token;uniqueIndex"`
	ShopName     string    `json:"shop_name"`
	ShopAddress  string    `json:"shop_address" gorm:"type:text"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleWorkshop, RoleVendor, RoleAdmin:
		return true
	}
	return false
}
