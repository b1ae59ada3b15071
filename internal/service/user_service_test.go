package service

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"tourit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserServiceProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Active user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{
			ID: 7, Username: "traveler", Email: "t@example.com", IsSubscribed: true, IsActive: true,
		}, nil)
		svc := NewUserService(userRepo, new(MockPostRepository), new(MockCommentRepository))

		profile, err := svc.Profile(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "traveler", profile.Username)
		assert.True(t, profile.IsSubscribed)
	})

	t.Run("Deactivated user reads as not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{
			ID: 7, IsActive: false,
		}, nil)
		svc := NewUserService(userRepo, new(MockPostRepository), new(MockCommentRepository))

		_, err := svc.Profile(ctx, 7)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestUserServiceDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("Identity fields are scrubbed", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{
			ID:           7,
			Username:     "traveler",
			Email:        "t@example.com",
			PasswordHash: "$2a$10$hash",
			IsSubscribed: true,
			IsActive:     true,
		}, nil)

		var saved *models.User
		userRepo.On("Update", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*models.User)
			}).Return(nil)

		svc := NewUserService(userRepo, new(MockPostRepository), new(MockCommentRepository))
		require.NoError(t, svc.Deactivate(ctx, 7))

		require.NotNil(t, saved)
		assert.Regexp(t, regexp.MustCompile(`^\[DELETED_7_[0-9a-f-]{8}\]$`), saved.Username)
		assert.Equal(t, fmt.Sprintf("7@%s", models.DeactivatedDomain), saved.Email)
		assert.Empty(t, saved.PasswordHash)
		assert.False(t, saved.IsSubscribed)
		assert.False(t, saved.IsActive)
	})

	t.Run("Already deactivated reads as not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{
			ID: 7, IsActive: false,
		}, nil)
		svc := NewUserService(userRepo, new(MockPostRepository), new(MockCommentRepository))

		err := svc.Deactivate(ctx, 7)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		userRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Placeholder collision surfaces as internal error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{
			ID: 7, Username: "traveler", IsActive: true,
		}, nil)
		userRepo.On("Update", mock.Anything, mock.Anything).
			Return(models.NewConflictError("Username or email already taken"))

		svc := NewUserService(userRepo, new(MockPostRepository), new(MockCommentRepository))
		err := svc.Deactivate(ctx, 7)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	})
}

func TestUserServiceMyPosts(t *testing.T) {
	postRepo := new(MockPostRepository)
	lat := 35.0
	lng := 139.0
	img := "uploads/post_2/x.jpg"
	postRepo.On("ListByUser", mock.Anything, uint(7), 50, "new").Return([]*models.Post{
		{ID: 1, UserID: ptrUint(7), Title: "Live post", Body: ptrStr("content")},
		{ID: 2, UserID: ptrUint(7), Title: "Deleted post", IsDeleted: true,
			Latitude: &lat, Longitude: &lng, ImageURL: &img},
	}, nil)

	svc := NewUserService(new(MockUserRepository), postRepo, new(MockCommentRepository))
	dtos, err := svc.MyPosts(context.Background(), 7, 50, "new")
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	// Owner-facing label replaces the username on every row
	assert.Equal(t, models.OwnPostsAuthor, dtos[0].AuthorUsername)
	assert.Empty(t, dtos[0].Body)

	// Soft-deleted rows read as redacted with location and image stripped
	assert.Equal(t, models.RedactedBody, dtos[1].Body)
	assert.Nil(t, dtos[1].ImageURL)
	assert.Nil(t, dtos[1].Latitude)
	assert.Nil(t, dtos[1].Longitude)
}

func TestUserServiceMyComments(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	commentRepo.On("ListByUser", mock.Anything, uint(7), 50, "score").Return([]*models.Comment{
		{ID: 1, UserID: ptrUint(7), PostID: 42, Body: ptrStr("my take"), Score: 5},
	}, nil)

	svc := NewUserService(new(MockUserRepository), new(MockPostRepository), commentRepo)
	dtos, err := svc.MyComments(context.Background(), 7, 50, "score")
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, models.OwnCommentsAuthor, dtos[0].AuthorUsername)
	assert.Equal(t, "my take", dtos[0].Body)
	assert.Equal(t, 5, dtos[0].Score)
}

func TestUserServiceSetSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("Flips the flag", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{
			ID: 7, IsActive: true, IsSubscribed: false,
		}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.IsSubscribed
		})).Return(nil)

		svc := NewUserService(userRepo, new(MockPostRepository), new(MockCommentRepository))
		require.NoError(t, svc.SetSubscription(ctx, 7, true))
		userRepo.AssertExpectations(t)
	})

	t.Run("Setting the current state is a no-op", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{
			ID: 7, IsActive: true, IsSubscribed: true,
		}, nil)

		svc := NewUserService(userRepo, new(MockPostRepository), new(MockCommentRepository))
		require.NoError(t, svc.SetSubscription(ctx, 7, true))
		userRepo.AssertNotCalled(t, "Update")
	})
}
