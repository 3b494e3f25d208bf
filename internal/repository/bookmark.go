package repository

import (
	"context"

	"curiouslife/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkRepository defines persistence operations for saved blogs.
type BookmarkRepository interface {
	Save(ctx context.Context, userID, blogID uint) (bool, error)
	Unsave(ctx context.Context, userID, blogID uint) (bool, error)
	IsSaved(ctx context.Context, userID, blogID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Blog, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository returns a new BookmarkRepository implementation.
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Save inserts a bookmark row unless one already exists. Returns true when a
// new row was inserted.
func (r *bookmarkRepository) Save(ctx context.Context, userID, blogID uint) (bool, error) {
	saved := models.SavedBlog{UserID: userID, BlogID: blogID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "blog_id"}},
			DoNothing: true,
		}).
		Create(&saved)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Unsave removes the bookmark row. Returns true when a row was removed.
func (r *bookmarkRepository) Unsave(ctx context.Context, userID, blogID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.SavedBlog{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *bookmarkRepository) IsSaved(ctx context.Context, userID, blogID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedBlog{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *bookmarkRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SavedBlog{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *bookmarkRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedBlog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

// ListByUser returns the blogs a user saved, newest bookmark first.
func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Select("blogs.*, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id) as comment_count, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.blog_id = blogs.id) as like_count, "+
			"EXISTS(SELECT 1 FROM likes WHERE likes.blog_id = blogs.id AND likes.user_id = ?) as liked", userID).
		Joins("JOIN saved_blogs ON saved_blogs.blog_id = blogs.id").
		Where("saved_blogs.user_id = ?", userID).
		Order("saved_blogs.created_at DESC").
		Preload("Author").
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}
