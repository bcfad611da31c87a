package models

import "time"

type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `gorm:"not null" json:"username"`
	Email     string     `gorm:"uniqueIndex" json:"email"`
	Phone     string     `gorm:"uniqueIndex" json:"phone"`
	Password  string     `json:"-"`
	Role      string     `gorm:"type:VARCHAR(20);default:'user'" json:"role"`
	City      string     `json:"city"`
	Address   string     `json:"address"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LoginCode holds a short-lived phone verification code for OTP login.
type LoginCode struct {
	ID        uint      `gorm:"primaryKey"`
	Phone     string    `gorm:"uniqueIndex;not null"`
	Code      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
