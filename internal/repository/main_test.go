package repository

import (
	"fmt"
	"testing"

	"curiouslife/internal/database"
	"curiouslife/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test. The named DSN
// keeps the database alive across the pooled connections GORM opens.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: "hashed-password",
		Role:     models.RoleRegular,
		CanPost:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBlog(t *testing.T, db *gorm.DB, authorID uint) *models.Blog {
	t.Helper()
	blog := &models.Blog{
		Title:    gofakeit.Sentence(4),
		Body:     gofakeit.Paragraph(2, 4, 10, " "),
		Category: "science",
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(blog).Error)
	return blog
}
