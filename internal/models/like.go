package models

import (
	"time"
)

// Like records that a user likes a blog.
// The combination of UserID and BlogID must be unique; rows are hard-deleted
// so the index never collides with tombstones.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_blog" json:"user_id"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_like_user_blog" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
