// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role is the coarse access tier of a user.
type Role string

const (
	// RoleAdministrator grants every operation including moderation.
	RoleAdministrator Role = "administrator"
	// RoleRegular is the default tier; writes are gated by CanPost and ownership.
	RoleRegular Role = "regular"
)

// User represents a registered account on the platform.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Photo    string `json:"photo,omitempty"`
	Bio      string `gorm:"type:text" json:"bio,omitempty"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'regular'" json:"role"`
	// CanPost gates posting, commenting and liking independently of Role.
	CanPost   bool      `gorm:"not null;default:true" json:"can_post"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Blogs []Blog `gorm:"foreignKey:AuthorID" json:"blogs,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}
