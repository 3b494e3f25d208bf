package models

import (
	"time"
)

// SavedBlog records a bookmark relation between a user and a blog.
// At most one row exists per (user, blog) pair.
type SavedBlog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_blog" json:"user_id"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_blog" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`

	Blog Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}
