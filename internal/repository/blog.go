// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"curiouslife/internal/models"
	"curiouslife/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Number of entries served by the recent and popular feeds.
const feedLimit = 6

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Blog, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error)
	Recent(ctx context.Context, currentUserID uint) ([]*models.Blog, error)
	Popular(ctx context.Context, currentUserID uint) ([]*models.Blog, error)
	ByCategory(ctx context.Context, category string, limit, offset int, currentUserID uint) ([]*models.Blog, error)
	ByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	Like(ctx context.Context, userID, blogID uint) (bool, error)
	Unlike(ctx context.Context, userID, blogID uint) (bool, error)
	IsLiked(ctx context.Context, userID, blogID uint) (bool, error)
	LikeCount(ctx context.Context, blogID uint) (int64, error)
	CountLikes(ctx context.Context) (int64, error)

	AuthorBlogIDs(ctx context.Context, authorID uint) ([]uint, error)
	CountLikesForBlogs(ctx context.Context, blogIDs []uint) (int64, error)
	CountCommentsForBlogs(ctx context.Context, blogIDs []uint) (int64, error)
}

// blogRepository implements BlogRepository
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	defer observability.TrackQuery("create", "blogs")()
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Recent(ctx context.Context, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

// Popular orders by like count, breaking ties on comment count.
// like_count and comment_count are SELECT aliases from applyBlogDetails.
func (r *blogRepository) Popular(ctx context.Context, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("like_count DESC, comment_count DESC").
		Limit(feedLimit).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) ByCategory(ctx context.Context, category string, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("category = ?", category).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) ByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

// applyBlogDetails adds subqueries to fetch counts and liked status in a single query.
func (r *blogRepository) applyBlogDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "blogs.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id) as comment_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.blog_id = blogs.id) as like_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.blog_id = blogs.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a blog together with its comments, likes and bookmarks.
func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "blogs")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.SavedBlog{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Blog{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Blog", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

// Like inserts a like row if one does not already exist. The unique index on
// (user_id, blog_id) plus ON CONFLICT DO NOTHING makes concurrent toggles
// collapse to a single row. Returns true when a new row was inserted.
func (r *blogRepository) Like(ctx context.Context, userID, blogID uint) (bool, error) {
	like := models.Like{UserID: userID, BlogID: blogID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "blog_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Unlike removes the like row. Returns true when a row was actually removed.
func (r *blogRepository) Unlike(ctx context.Context, userID, blogID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *blogRepository) IsLiked(ctx context.Context, userID, blogID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *blogRepository) LikeCount(ctx context.Context, blogID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// CountLikes returns the number of like rows across all blogs.
func (r *blogRepository) CountLikes(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *blogRepository) AuthorBlogIDs(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("author_id = ?", authorID).
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// CountLikesForBlogs counts likes across a set of blogs with a single query.
func (r *blogRepository) CountLikesForBlogs(ctx context.Context, blogIDs []uint) (int64, error) {
	if len(blogIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("blog_id IN ?", blogIDs).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// CountCommentsForBlogs counts comments across a set of blogs with a single query.
func (r *blogRepository) CountCommentsForBlogs(ctx context.Context, blogIDs []uint) (int64, error) {
	if len(blogIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("blog_id IN ?", blogIDs).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
