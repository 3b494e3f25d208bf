package service

import (
	"context"
	"errors"
	"testing"

	"curiouslife/internal/models"
	"curiouslife/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Common acting identities.
var (
	adminIdentity  = policy.Identity{UserID: 1, Role: models.RoleAdministrator, CanPost: true}
	writerIdentity = policy.Identity{UserID: 2, Role: models.RoleRegular, CanPost: true}
	mutedIdentity  = policy.Identity{UserID: 3, Role: models.RoleRegular, CanPost: false}
)

// assertErrorCode asserts that err is an AppError with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// blogRepoStub is a stub for repository.BlogRepository.
type blogRepoStub struct {
	createFn                func(context.Context, *models.Blog) error
	getByIDFn               func(context.Context, uint, uint) (*models.Blog, error)
	listFn                  func(context.Context, int, int, uint) ([]*models.Blog, error)
	recentFn                func(context.Context, uint) ([]*models.Blog, error)
	popularFn               func(context.Context, uint) ([]*models.Blog, error)
	byCategoryFn            func(context.Context, string, int, int, uint) ([]*models.Blog, error)
	byAuthorFn              func(context.Context, uint, uint) ([]*models.Blog, error)
	updateFn                func(context.Context, *models.Blog) error
	deleteFn                func(context.Context, uint) error
	countFn                 func(context.Context) (int64, error)
	likeFn                  func(context.Context, uint, uint) (bool, error)
	unlikeFn                func(context.Context, uint, uint) (bool, error)
	isLikedFn               func(context.Context, uint, uint) (bool, error)
	likeCountFn             func(context.Context, uint) (int64, error)
	countLikesFn            func(context.Context) (int64, error)
	authorBlogIDsFn         func(context.Context, uint) ([]uint, error)
	countLikesForBlogsFn    func(context.Context, []uint) (int64, error)
	countCommentsForBlogsFn func(context.Context, []uint) (int64, error)
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *blogRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *blogRepoStub) Recent(ctx context.Context, currentUserID uint) ([]*models.Blog, error) {
	return s.recentFn(ctx, currentUserID)
}
func (s *blogRepoStub) Popular(ctx context.Context, currentUserID uint) ([]*models.Blog, error) {
	return s.popularFn(ctx, currentUserID)
}
func (s *blogRepoStub) ByCategory(ctx context.Context, category string, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	return s.byCategoryFn(ctx, category, limit, offset, currentUserID)
}
func (s *blogRepoStub) ByAuthor(ctx context.Context, authorID, currentUserID uint) ([]*models.Blog, error) {
	return s.byAuthorFn(ctx, authorID, currentUserID)
}
func (s *blogRepoStub) Update(ctx context.Context, blog *models.Blog) error {
	return s.updateFn(ctx, blog)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *blogRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *blogRepoStub) Like(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.likeFn(ctx, userID, blogID)
}
func (s *blogRepoStub) Unlike(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, blogID)
}
func (s *blogRepoStub) IsLiked(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, blogID)
}
func (s *blogRepoStub) LikeCount(ctx context.Context, blogID uint) (int64, error) {
	return s.likeCountFn(ctx, blogID)
}
func (s *blogRepoStub) CountLikes(ctx context.Context) (int64, error) {
	return s.countLikesFn(ctx)
}
func (s *blogRepoStub) AuthorBlogIDs(ctx context.Context, authorID uint) ([]uint, error) {
	return s.authorBlogIDsFn(ctx, authorID)
}
func (s *blogRepoStub) CountLikesForBlogs(ctx context.Context, blogIDs []uint) (int64, error) {
	return s.countLikesForBlogsFn(ctx, blogIDs)
}
func (s *blogRepoStub) CountCommentsForBlogs(ctx context.Context, blogIDs []uint) (int64, error) {
	return s.countCommentsForBlogsFn(ctx, blogIDs)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn: func(_ context.Context, _ *models.Blog) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Blog, error) {
			return &models.Blog{ID: id}, nil
		},
		listFn:                  func(_ context.Context, _, _ int, _ uint) ([]*models.Blog, error) { return nil, nil },
		recentFn:                func(_ context.Context, _ uint) ([]*models.Blog, error) { return nil, nil },
		popularFn:               func(_ context.Context, _ uint) ([]*models.Blog, error) { return nil, nil },
		byCategoryFn:            func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Blog, error) { return nil, nil },
		byAuthorFn:              func(_ context.Context, _, _ uint) ([]*models.Blog, error) { return nil, nil },
		updateFn:                func(_ context.Context, _ *models.Blog) error { return nil },
		deleteFn:                func(_ context.Context, _ uint) error { return nil },
		countFn:                 func(_ context.Context) (int64, error) { return 0, nil },
		likeFn:                  func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:                func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isLikedFn:               func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeCountFn:             func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countLikesFn:            func(_ context.Context) (int64, error) { return 0, nil },
		authorBlogIDsFn:         func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		countLikesForBlogsFn:    func(_ context.Context, _ []uint) (int64, error) { return 0, nil },
		countCommentsForBlogsFn: func(_ context.Context, _ []uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	setCanPostFn func(context.Context, uint, bool) error
	deleteFn     func(context.Context, uint) error
	listFn       func(context.Context, int, int) ([]models.User, int64, error)
	countFn      func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SetCanPost(ctx context.Context, id uint, canPost bool) error {
	return s.setCanPostFn(ctx, id, canPost)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleRegular, CanPost: true}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		setCanPostFn: func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.User, int64, error) { return nil, 0, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByBlogFn  func(context.Context, uint) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
	countFn       func(context.Context) (int64, error)
	countByUserFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	return s.listByBlogFn(ctx, blogID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *commentRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: writerIdentity.UserID}, nil
		},
		listByBlogFn:  func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		countFn:       func(_ context.Context) (int64, error) { return 0, nil },
		countByUserFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// bookmarkRepoStub is a stub for repository.BookmarkRepository.
type bookmarkRepoStub struct {
	saveFn        func(context.Context, uint, uint) (bool, error)
	unsaveFn      func(context.Context, uint, uint) (bool, error)
	isSavedFn     func(context.Context, uint, uint) (bool, error)
	listByUserFn  func(context.Context, uint) ([]*models.Blog, error)
	countFn       func(context.Context) (int64, error)
	countByUserFn func(context.Context, uint) (int64, error)
}

func (s *bookmarkRepoStub) Save(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.saveFn(ctx, userID, blogID)
}
func (s *bookmarkRepoStub) Unsave(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.unsaveFn(ctx, userID, blogID)
}
func (s *bookmarkRepoStub) IsSaved(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.isSavedFn(ctx, userID, blogID)
}
func (s *bookmarkRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Blog, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *bookmarkRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *bookmarkRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}

func noopBookmarkRepo() *bookmarkRepoStub {
	return &bookmarkRepoStub{
		saveFn:        func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unsaveFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isSavedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listByUserFn:  func(_ context.Context, _ uint) ([]*models.Blog, error) { return nil, nil },
		countFn:       func(_ context.Context) (int64, error) { return 0, nil },
		countByUserFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}
