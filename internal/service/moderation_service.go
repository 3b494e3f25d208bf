package service

import (
	"context"

	"curiouslife/internal/models"
	"curiouslife/internal/observability"
	"curiouslife/internal/policy"
	"curiouslife/internal/repository"
)

// DashboardStats is the admin overview: independent table counts. The counts
// are separate queries, not a join, so a slow table cannot poison the rest.
type DashboardStats struct {
	Users      int64 `json:"users"`
	Blogs      int64 `json:"blogs"`
	Comments   int64 `json:"comments"`
	Likes      int64 `json:"likes"`
	SavedBlogs int64 `json:"saved_blogs"`
}

// UserListing is a page of users with the overall total.
type UserListing struct {
	Users      []models.User `json:"users"`
	TotalCount int64         `json:"total_count"`
}

// BlogListing is a page of blogs with the overall total.
type BlogListing struct {
	Blogs      []*models.Blog `json:"blogs"`
	TotalCount int64          `json:"total_count"`
}

// AuthorActivity aggregates everything an author has done for the admin view.
// SavedBlogs carries the bookmarked blogs with their own like/comment counts.
type AuthorActivity struct {
	User            models.User    `json:"user"`
	Blogs           []*models.Blog `json:"blogs"`
	BlogCount       int            `json:"blog_count"`
	TotalLikes      int64          `json:"total_likes"`
	TotalComments   int64          `json:"total_comments"`
	CommentsWritten int64          `json:"comments_written"`
	SavedBlogs      []*models.Blog `json:"saved_blogs"`
	SavedCount      int64          `json:"saved_count"`
}

// ModerationService provides the admin panel operations.
type ModerationService struct {
	userRepo     repository.UserRepository
	blogRepo     repository.BlogRepository
	commentRepo  repository.CommentRepository
	bookmarkRepo repository.BookmarkRepository
}

// NewModerationService returns a new ModerationService.
func NewModerationService(
	userRepo repository.UserRepository,
	blogRepo repository.BlogRepository,
	commentRepo repository.CommentRepository,
	bookmarkRepo repository.BookmarkRepository,
) *ModerationService {
	return &ModerationService{
		userRepo:     userRepo,
		blogRepo:     blogRepo,
		commentRepo:  commentRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

// GetDashboardStats returns the admin overview counts.
func (s *ModerationService) GetDashboardStats(ctx context.Context, identity policy.Identity) (*DashboardStats, error) {
	if err := policy.CanModerate(identity); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	counts := []struct {
		count func(context.Context) (int64, error)
		dest  *int64
	}{
		{s.userRepo.Count, &stats.Users},
		{s.blogRepo.Count, &stats.Blogs},
		{s.commentRepo.Count, &stats.Comments},
		{s.blogRepo.CountLikes, &stats.Likes},
		{s.bookmarkRepo.Count, &stats.SavedBlogs},
	}
	for _, c := range counts {
		total, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dest = total
	}
	return stats, nil
}

// ListUsers returns a page of users with the overall total.
func (s *ModerationService) ListUsers(ctx context.Context, identity policy.Identity, limit, offset int) (*UserListing, error) {
	if err := policy.CanModerate(identity); err != nil {
		return nil, err
	}
	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &UserListing{Users: users, TotalCount: total}, nil
}

// ForbidPosting revokes a user's posting permission. Forbidding an already
// forbidden user is a no-op; the returned flag reports whether anything changed.
func (s *ModerationService) ForbidPosting(ctx context.Context, identity policy.Identity, userID uint) (bool, error) {
	return s.setPosting(ctx, identity, userID, false, "deny_posting")
}

// AllowPosting restores a user's posting permission. Idempotent like ForbidPosting.
func (s *ModerationService) AllowPosting(ctx context.Context, identity policy.Identity, userID uint) (bool, error) {
	return s.setPosting(ctx, identity, userID, true, "allow_posting")
}

func (s *ModerationService) setPosting(ctx context.Context, identity policy.Identity, userID uint, canPost bool, action string) (bool, error) {
	if err := policy.CanModerate(identity); err != nil {
		return false, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.CanPost == canPost {
		return false, nil
	}
	if err := s.userRepo.SetCanPost(ctx, userID, canPost); err != nil {
		return false, err
	}
	observability.ModerationActionsTotal.WithLabelValues(action).Inc()
	return true, nil
}

// RemoveUser deletes a user and everything they contributed. Administrators
// cannot be removed through this path; demote them first.
func (s *ModerationService) RemoveUser(ctx context.Context, identity policy.Identity, userID uint) error {
	if err := policy.CanModerate(identity); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return models.NewForbiddenError("Administrators cannot be removed")
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	observability.ModerationActionsTotal.WithLabelValues("remove_user").Inc()
	return nil
}

// GetAuthorActivity returns a full activity breakdown for one user.
func (s *ModerationService) GetAuthorActivity(ctx context.Context, identity policy.Identity, userID uint) (*AuthorActivity, error) {
	if err := policy.CanModerate(identity); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	blogs, err := s.blogRepo.ByAuthor(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	ids, err := s.blogRepo.AuthorBlogIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.blogRepo.CountLikesForBlogs(ctx, ids)
	if err != nil {
		return nil, err
	}
	totalComments, err := s.blogRepo.CountCommentsForBlogs(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsWritten, err := s.commentRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	savedBlogs, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	savedCount, err := s.bookmarkRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AuthorActivity{
		User:            *user,
		Blogs:           blogs,
		BlogCount:       len(ids),
		TotalLikes:      totalLikes,
		TotalComments:   totalComments,
		CommentsWritten: commentsWritten,
		SavedBlogs:      savedBlogs,
		SavedCount:      savedCount,
	}, nil
}

// ListBlogs returns a page of all blogs with the overall total.
func (s *ModerationService) ListBlogs(ctx context.Context, identity policy.Identity, limit, offset int) (*BlogListing, error) {
	if err := policy.CanModerate(identity); err != nil {
		return nil, err
	}
	blogs, err := s.blogRepo.List(ctx, limit, offset, 0)
	if err != nil {
		return nil, err
	}
	total, err := s.blogRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &BlogListing{Blogs: blogs, TotalCount: total}, nil
}

// RemoveBlog deletes any blog regardless of ownership.
func (s *ModerationService) RemoveBlog(ctx context.Context, identity policy.Identity, blogID uint) error {
	if err := policy.CanModerate(identity); err != nil {
		return err
	}
	if err := s.blogRepo.Delete(ctx, blogID); err != nil {
		return err
	}
	observability.ModerationActionsTotal.WithLabelValues("remove_blog").Inc()
	return nil
}
