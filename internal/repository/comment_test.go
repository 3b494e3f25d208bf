package repository

import (
	"context"
	"testing"

	"curiouslife/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	reader := createTestUser(t, db)
	blog := createTestBlog(t, db, author.ID)

	first := &models.Comment{Content: "first", UserID: reader.ID, BlogID: blog.ID}
	require.NoError(t, repo.Create(ctx, first))
	second := &models.Comment{Content: "second", UserID: author.ID, BlogID: blog.ID}
	require.NoError(t, repo.Create(ctx, second))

	comments, err := repo.ListByBlog(ctx, blog.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// commenter identity rides along for display
	assert.Equal(t, reader.FullName, commentByID(comments, first.ID).User.FullName)
}

func commentByID(comments []*models.Comment, id uint) *models.Comment {
	for _, c := range comments {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func TestCommentRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	blog := createTestBlog(t, db, author.ID)
	comment := &models.Comment{Content: "draft", UserID: author.ID, BlogID: blog.ID}
	require.NoError(t, repo.Create(ctx, comment))

	comment.Content = "edited"
	require.NoError(t, repo.Update(ctx, comment))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, repo.Delete(ctx, comment.ID))

	_, err = repo.GetByID(ctx, comment.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	err = repo.Delete(ctx, comment.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_CountByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	commenter := createTestUser(t, db)
	blog := createTestBlog(t, db, author.ID)

	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "one", UserID: commenter.ID, BlogID: blog.ID}))
	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "two", UserID: commenter.ID, BlogID: blog.ID}))

	count, err := repo.CountByUser(ctx, commenter.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountByUser(ctx, author.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
