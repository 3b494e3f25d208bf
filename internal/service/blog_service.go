package service

import (
	"context"
	"strings"

	"curiouslife/internal/models"
	"curiouslife/internal/observability"
	"curiouslife/internal/policy"
	"curiouslife/internal/repository"
)

// BlogService handles blog publishing, feeds and like toggling.
type BlogService struct {
	blogRepo repository.BlogRepository
}

type CreateBlogInput struct {
	Identity policy.Identity
	Title    string
	Body     string
	Category string
	Image    string
}

type UpdateBlogInput struct {
	Identity policy.Identity
	BlogID   uint
	Title    string
	Body     string
	Category string
	Image    string
}

// LikeState is the outcome of a like toggle or a like-status lookup.
type LikeState struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

func NewBlogService(blogRepo repository.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

const (
	maxTitleLen    = 200
	maxBodyLen     = 50000
	maxCategoryLen = 50
)

func validateBlogFields(title, body, category string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if body == "" {
		return models.NewValidationError("Body is required")
	}
	if len(body) > maxBodyLen {
		return models.NewValidationError("Body too long (max 50000 characters)")
	}
	if category == "" {
		return models.NewValidationError("Category is required")
	}
	if len(category) > maxCategoryLen {
		return models.NewValidationError("Category too long (max 50 characters)")
	}
	return nil
}

func (s *BlogService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	if err := policy.CanWriteContent(in.Identity); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if err := validateBlogFields(in.Title, in.Body, in.Category); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:    in.Title,
		Body:     in.Body,
		Category: in.Category,
		Image:    in.Image,
		AuthorID: in.Identity.UserID,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, blog.ID, in.Identity.UserID)
}

func (s *BlogService) UpdateBlog(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, in.BlogID, in.Identity.UserID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanMutateOwned(in.Identity, blog.AuthorID); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		blog.Title = title
	}
	if in.Body != "" {
		if len(in.Body) > maxBodyLen {
			return nil, models.NewValidationError("Body too long (max 50000 characters)")
		}
		blog.Body = in.Body
	}
	if category := strings.ToLower(strings.TrimSpace(in.Category)); category != "" {
		if len(category) > maxCategoryLen {
			return nil, models.NewValidationError("Category too long (max 50 characters)")
		}
		blog.Category = category
	}
	if in.Image != "" {
		blog.Image = in.Image
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, blog.ID, in.Identity.UserID)
}

func (s *BlogService) DeleteBlog(ctx context.Context, identity policy.Identity, blogID uint) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID, identity.UserID)
	if err != nil {
		return err
	}
	if err := policy.CanMutateOwned(identity, blog.AuthorID); err != nil {
		return err
	}
	return s.blogRepo.Delete(ctx, blogID)
}

func (s *BlogService) GetBlog(ctx context.Context, id, currentUserID uint) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, id, currentUserID)
}

func (s *BlogService) ListBlogs(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	return s.blogRepo.List(ctx, limit, offset, currentUserID)
}

func (s *BlogService) RecentBlogs(ctx context.Context, currentUserID uint) ([]*models.Blog, error) {
	return s.blogRepo.Recent(ctx, currentUserID)
}

func (s *BlogService) PopularBlogs(ctx context.Context, currentUserID uint) ([]*models.Blog, error) {
	return s.blogRepo.Popular(ctx, currentUserID)
}

func (s *BlogService) BlogsByCategory(ctx context.Context, category string, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return nil, models.NewValidationError("Category is required")
	}
	return s.blogRepo.ByCategory(ctx, category, limit, offset, currentUserID)
}

// MyBlogs lists the blogs the acting user authored.
func (s *BlogService) MyBlogs(ctx context.Context, identity policy.Identity) ([]*models.Blog, error) {
	if !identity.Present() {
		return nil, models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}
	return s.blogRepo.ByAuthor(ctx, identity.UserID, identity.UserID)
}

// ToggleLike flips the acting user's like on a blog. The insert is guarded by
// the unique index, so two concurrent toggles cannot produce duplicate rows;
// whichever request loses the insert race falls through to the unlike branch.
func (s *BlogService) ToggleLike(ctx context.Context, identity policy.Identity, blogID uint) (*LikeState, error) {
	if err := policy.CanWriteContent(identity); err != nil {
		return nil, err
	}
	if _, err := s.blogRepo.GetByID(ctx, blogID, 0); err != nil {
		return nil, err
	}

	inserted, err := s.blogRepo.Like(ctx, identity.UserID, blogID)
	if err != nil {
		return nil, err
	}
	liked := inserted
	if !inserted {
		if _, err := s.blogRepo.Unlike(ctx, identity.UserID, blogID); err != nil {
			return nil, err
		}
		liked = false
	}

	count, err := s.blogRepo.LikeCount(ctx, blogID)
	if err != nil {
		return nil, err
	}

	observability.RecordLikeToggle(liked)
	return &LikeState{Liked: liked, LikeCount: count}, nil
}

// LikeStatus reports whether the user liked the blog and the current count.
func (s *BlogService) LikeStatus(ctx context.Context, userID, blogID uint) (*LikeState, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID, 0); err != nil {
		return nil, err
	}
	liked := false
	if userID != 0 {
		var err error
		liked, err = s.blogRepo.IsLiked(ctx, userID, blogID)
		if err != nil {
			return nil, err
		}
	}
	count, err := s.blogRepo.LikeCount(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, LikeCount: count}, nil
}
