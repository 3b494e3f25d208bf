// Package service contains the business logic of the application.
package service

import (
	"context"
	"strings"

	"curiouslife/internal/models"
	"curiouslife/internal/observability"
	"curiouslife/internal/repository"
	"curiouslife/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles accounts, credentials and public author profiles.
type UserService struct {
	userRepo repository.UserRepository
	blogRepo repository.BlogRepository
}

type SignupInput struct {
	FullName string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID   uint
	FullName string
	Photo    string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// AuthorProfile is the public view of an author with aggregate stats.
type AuthorProfile struct {
	Author        models.User    `json:"author"`
	Blogs         []*models.Blog `json:"blogs"`
	BlogCount     int            `json:"blog_count"`
	TotalLikes    int64          `json:"total_likes"`
	TotalComments int64          `json:"total_comments"`
}

func NewUserService(userRepo repository.UserRepository, blogRepo repository.BlogRepository) *UserService {
	return &UserService{userRepo: userRepo, blogRepo: blogRepo}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FullName: in.FullName,
		Email:    in.Email,
		Password: string(hash),
		Role:     models.RoleRegular,
		CanPost:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.SignupsTotal.Inc()
	return user, nil
}

// Authenticate verifies credentials. The same message is returned for an
// unknown email and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Incorrect email or password")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.FullName); name != "" {
		if err := validation.ValidateFullName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FullName = name
	}
	if in.Photo != "" {
		user.Photo = in.Photo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateBio(ctx context.Context, userID uint, bio string) (*models.User, error) {
	const maxBioLen = 1000
	if len(bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 1000 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Bio = bio
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.NewPassword != in.ConfirmPassword {
		return models.NewValidationError("New password and confirmation do not match")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return models.NewUnauthenticatedError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hash)
	return s.userRepo.Update(ctx, user)
}

// AuthorProfile returns an author's public page: their blogs plus aggregate
// like and comment totals computed with set filters over the author's blog IDs.
func (s *UserService) AuthorProfile(ctx context.Context, authorID, currentUserID uint) (*AuthorProfile, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	blogs, err := s.blogRepo.ByAuthor(ctx, authorID, currentUserID)
	if err != nil {
		return nil, err
	}

	ids, err := s.blogRepo.AuthorBlogIDs(ctx, authorID)
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

	return &AuthorProfile{
		Author:        *author,
		Blogs:         blogs,
		BlogCount:     len(ids),
		TotalLikes:    totalLikes,
		TotalComments: totalComments,
	}, nil
}
