package service

import (
	"context"
	"strings"

	"curiouslife/internal/models"
	"curiouslife/internal/policy"
	"curiouslife/internal/repository"
)

// CommentService handles commenting on blogs.
type CommentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
}

func NewCommentService(commentRepo repository.CommentRepository, blogRepo repository.BlogRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, blogRepo: blogRepo}
}

const maxCommentLen = 2000

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return "", models.NewValidationError("Comment too long (max 2000 characters)")
	}
	return content, nil
}

func (s *CommentService) AddComment(ctx context.Context, identity policy.Identity, blogID uint, content string) (*models.Comment, error) {
	if err := policy.CanWriteContent(identity); err != nil {
		return nil, err
	}
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.blogRepo.GetByID(ctx, blogID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  identity.UserID,
		BlogID:  blogID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByBlog(ctx, blogID)
}

func (s *CommentService) EditComment(ctx context.Context, identity policy.Identity, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanMutateOwned(identity, comment.UserID); err != nil {
		return nil, err
	}
	content, err = validateCommentContent(content)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, identity policy.Identity, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := policy.CanMutateOwned(identity, comment.UserID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
