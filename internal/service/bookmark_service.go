package service

import (
	"context"

	"curiouslife/internal/models"
	"curiouslife/internal/policy"
	"curiouslife/internal/repository"
)

// BookmarkService handles saving blogs for later reading. Bookmarks are a
// private reading list, so they only require a signed-in user and are not
// gated by the posting permission.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	blogRepo     repository.BlogRepository
}

func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, blogRepo repository.BlogRepository) *BookmarkService {
	return &BookmarkService{bookmarkRepo: bookmarkRepo, blogRepo: blogRepo}
}

// SaveBlog bookmarks a blog. Saving an already-saved blog is a no-op; the
// returned flag reports whether a new bookmark was created.
func (s *BookmarkService) SaveBlog(ctx context.Context, identity policy.Identity, blogID uint) (bool, error) {
	if !identity.Present() {
		return false, models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}
	if _, err := s.blogRepo.GetByID(ctx, blogID, 0); err != nil {
		return false, err
	}
	return s.bookmarkRepo.Save(ctx, identity.UserID, blogID)
}

// UnsaveBlog removes a bookmark. Removing a bookmark that does not exist is a
// no-op; the returned flag reports whether a bookmark was removed.
func (s *BookmarkService) UnsaveBlog(ctx context.Context, identity policy.Identity, blogID uint) (bool, error) {
	if !identity.Present() {
		return false, models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}
	return s.bookmarkRepo.Unsave(ctx, identity.UserID, blogID)
}

// SavedBlogs lists the acting user's bookmarked blogs, newest bookmark first.
func (s *BookmarkService) SavedBlogs(ctx context.Context, identity policy.Identity) ([]*models.Blog, error) {
	if !identity.Present() {
		return nil, models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}
	return s.bookmarkRepo.ListByUser(ctx, identity.UserID)
}
