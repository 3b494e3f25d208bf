package seed

import (
	"fmt"
	"log"

	"curiouslife/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumBlogs    int
	ShouldClean bool
}

// Seed populates the database with demo accounts, blogs and engagement.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d blogs...", opts.NumUsers, opts.NumBlogs)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	blogs, err := createBlogs(f, users, opts.NumBlogs)
	if err != nil {
		return fmt.Errorf("failed to create blogs: %w", err)
	}
	log.Printf("created %d blogs", len(blogs))

	if err := createEngagement(f, users, blogs); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Database seeding completed.")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE saved_blogs, likes, comments, blogs, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

// createUsers seeds a fixed set of well-known accounts first, then fills up
// to count with generated ones. The admin account moderates, the muted one
// exercises the posting restriction in the UI.
func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	admin, err := f.CreateUser(func(u *models.User) {
		u.FullName = "Site Admin"
		u.Email = "admin@example.com"
		u.Role = models.RoleAdministrator
	})
	if err != nil {
		return nil, err
	}
	users = append(users, admin)

	muted, err := f.CreateUser(func(u *models.User) {
		u.FullName = "Muted Writer"
		u.Email = "muted@example.com"
		u.CanPost = false
	})
	if err != nil {
		return nil, err
	}
	users = append(users, muted)

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func createBlogs(f *Factory, users []*models.User, count int) ([]*models.Blog, error) {
	blogs := make([]*models.Blog, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.r.Intn(len(users))]
		blog, err := f.CreateBlog(author)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	return blogs, nil
}

// createEngagement scatters likes, comments and bookmarks so the popular
// feed and the admin dashboard have something to show.
func createEngagement(f *Factory, users []*models.User, blogs []*models.Blog) error {
	if len(users) == 0 || len(blogs) == 0 {
		return nil
	}

	likes := len(blogs) * 3
	for i := 0; i < likes; i++ {
		if err := f.CreateLike(users[f.r.Intn(len(users))], blogs[f.r.Intn(len(blogs))]); err != nil {
			return err
		}
	}

	comments := len(blogs) * 2
	for i := 0; i < comments; i++ {
		if _, err := f.CreateComment(users[f.r.Intn(len(users))], blogs[f.r.Intn(len(blogs))]); err != nil {
			return err
		}
	}

	saves := len(blogs)
	for i := 0; i < saves; i++ {
		if err := f.CreateSavedBlog(users[f.r.Intn(len(users))], blogs[f.r.Intn(len(blogs))]); err != nil {
			return err
		}
	}
	return nil
}
