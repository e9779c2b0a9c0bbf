package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser       = "user"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"` // user, instructor, admin
	Bio          string `json:"bio"`
	AvatarURL    string `json:"avatar_url"`
}

type LoginHistory struct {
	gorm.Model
	UserID    uint      `gorm:"index" json:"user_id"`
	LoginTime time.Time `json:"login_time"`
}
