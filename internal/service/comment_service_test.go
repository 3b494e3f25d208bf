package service

import (
	"context"
	"strings"
	"testing"

	"curiouslife/internal/models"
	"curiouslife/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		var created *models.Comment
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 11
			created = c
			return nil
		}
		svc := NewCommentService(commentRepo, noopBlogRepo())

		comment, err := svc.AddComment(ctx, writerIdentity, 1, "  great read  ")
		require.NoError(t, err)
		assert.EqualValues(t, 11, comment.ID)
		assert.Equal(t, "great read", created.Content)
		assert.Equal(t, writerIdentity.UserID, created.UserID)
	})

	t.Run("Empty Content", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopBlogRepo())
		_, err := svc.AddComment(ctx, writerIdentity, 1, "   ")
		assertErrorCode(t, err, models.CodeValidation)
	})

	t.Run("Too Long", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopBlogRepo())
		_, err := svc.AddComment(ctx, writerIdentity, 1, strings.Repeat("c", 2001))
		assertErrorCode(t, err, models.CodeValidation)
	})

	t.Run("Missing Blog", func(t *testing.T) {
		blogRepo := noopBlogRepo()
		blogRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Blog, error) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		svc := NewCommentService(noopCommentRepo(), blogRepo)
		_, err := svc.AddComment(ctx, writerIdentity, 1, "hello")
		assertErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopBlogRepo())
		_, err := svc.AddComment(ctx, policy.Anonymous, 1, "hello")
		assertErrorCode(t, err, models.CodeUnauthenticated)
	})

	t.Run("Muted User", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopBlogRepo())
		_, err := svc.AddComment(ctx, mutedIdentity, 1, "hello")
		assertErrorCode(t, err, models.CodeForbidden)
	})
}

func TestCommentService_EditComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Owner Edits", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		var saved *models.Comment
		commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
			saved = c
			return nil
		}
		svc := NewCommentService(commentRepo, noopBlogRepo())

		comment, err := svc.EditComment(ctx, writerIdentity, 11, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", comment.Content)
		assert.Equal(t, "edited", saved.Content)
	})

	t.Run("Non-Owner Forbidden", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 99}, nil
		}
		svc := NewCommentService(commentRepo, noopBlogRepo())
		_, err := svc.EditComment(ctx, writerIdentity, 11, "edited")
		assertErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("Admin Edits Any", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 99}, nil
		}
		svc := NewCommentService(commentRepo, noopBlogRepo())
		_, err := svc.EditComment(ctx, adminIdentity, 11, "moderated")
		assert.NoError(t, err)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	commentRepo := noopCommentRepo()
	deleted := uint(0)
	commentRepo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	svc := NewCommentService(commentRepo, noopBlogRepo())

	require.NoError(t, svc.DeleteComment(ctx, writerIdentity, 11))
	assert.EqualValues(t, 11, deleted)

	err := svc.DeleteComment(ctx, mutedIdentity, 11)
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestCommentService_ListComments_MissingBlog(t *testing.T) {
	t.Parallel()
	blogRepo := noopBlogRepo()
	blogRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Blog, error) {
		return nil, models.NewNotFoundError("Blog", id)
	}
	svc := NewCommentService(noopCommentRepo(), blogRepo)
	_, err := svc.ListComments(context.Background(), 1)
	assertErrorCode(t, err, models.CodeNotFound)
}
