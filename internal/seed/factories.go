// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"curiouslife/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Categories every seeded blog is drawn from. Matches the sections the
// frontend navigation exposes.
var Categories = []string{
	"travel", "science", "food", "technology", "life", "art", "history",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "Password123" so they are usable from the login form.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	name := gofakeit.Name()
	user := &models.User{
		FullName: name,
		Email:    fmt.Sprintf("%s%d@example.com", slugify(name), f.r.Intn(10000)),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(12),
		Photo:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:     models.RoleRegular,
		CanPost:  true,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateBlog constructs and persists a sample blog for the given author with
// a realistic created_at spread over the last 90 days.
func (f *Factory) CreateBlog(author *models.User, overrides ...func(*models.Blog)) (*models.Blog, error) {
	blog := &models.Blog{
		Title:    strings.TrimSuffix(gofakeit.Sentence(6), "."),
		Body:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Category: Categories[f.r.Intn(len(Categories))],
		Image:    fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
		AuthorID: author.ID,
	}

	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	blog.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(blog)
	}

	if err := f.db.Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// CreateComment persists a comment on the blog authored by the given user.
func (f *Factory) CreateComment(user *models.User, blog *models.Blog, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(10),
		UserID:  user.ID,
		BlogID:  blog.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on blog. Duplicate pairs are ignored
// so random engagement loops need not track what they already generated.
func (f *Factory) CreateLike(user *models.User, blog *models.Blog) error {
	like := &models.Like{UserID: user.ID, BlogID: blog.ID}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "blog_id"}},
		DoNothing: true,
	}).Create(like).Error
}

// CreateSavedBlog persists a bookmark from user on blog, ignoring duplicates.
func (f *Factory) CreateSavedBlog(user *models.User, blog *models.Blog) error {
	saved := &models.SavedBlog{UserID: user.ID, BlogID: blog.ID}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "blog_id"}},
		DoNothing: true,
	}).Create(saved).Error
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "."))
}
