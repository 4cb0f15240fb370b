package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Address is the delivery address stored on the user profile
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string    `json:"-" gorm:"not null"`
	Role            UserRole  `json:"role" gorm:"not null;default:'user'"`
	Phone           string    `json:"phone"`
	IsEmailVerified bool      `json:"is_email_verified" gorm:"default:false"`
	VerifyToken     string    `json:"-"`
	VerifyExpires   time.Time `json:"-"`
	Address         Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
