package repository

import (
	"context"
	"testing"

	"curiouslife/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkRepository_SaveUnsave(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookmarkRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	reader := createTestUser(t, db)
	blog := createTestBlog(t, db, author.ID)

	inserted, err := repo.Save(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	// saving twice keeps a single row
	inserted, err = repo.Save(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	saved, err := repo.IsSaved(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	removed, err := repo.Unsave(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unsave(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBookmarkRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookmarkRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	reader := createTestUser(t, db)
	liked := createTestBlog(t, db, author.ID)
	plain := createTestBlog(t, db, author.ID)
	createTestBlog(t, db, author.ID) // never saved

	_, err := repo.Save(ctx, reader.ID, liked.ID)
	require.NoError(t, err)
	_, err = repo.Save(ctx, reader.ID, plain.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Like{UserID: reader.ID, BlogID: liked.ID}).Error)

	blogs, err := repo.ListByUser(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, blogs, 2)

	byID := map[uint]*models.Blog{}
	for _, b := range blogs {
		byID[b.ID] = b
		assert.Equal(t, author.FullName, b.Author.FullName)
	}
	require.Contains(t, byID, liked.ID)
	require.Contains(t, byID, plain.ID)
	assert.True(t, byID[liked.ID].Liked)
	assert.Equal(t, 1, byID[liked.ID].LikeCount)
	assert.False(t, byID[plain.ID].Liked)

	other, err := repo.ListByUser(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBookmarkRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookmarkRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	collector := createTestUser(t, db)
	casual := createTestUser(t, db)
	first := createTestBlog(t, db, author.ID)
	second := createTestBlog(t, db, author.ID)

	_, err := repo.Save(ctx, collector.ID, first.ID)
	require.NoError(t, err)
	_, err = repo.Save(ctx, collector.ID, second.ID)
	require.NoError(t, err)
	_, err = repo.Save(ctx, casual.ID, first.ID)
	require.NoError(t, err)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	perUser, err := repo.CountByUser(ctx, collector.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, perUser)

	perUser, err = repo.CountByUser(ctx, author.ID)
	require.NoError(t, err)
	assert.Zero(t, perUser)
}
