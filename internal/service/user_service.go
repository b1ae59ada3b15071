package service

import (
	"context"
	"errors"
	"fmt"

	"tourit/internal/models"
	"tourit/internal/repository"

	"github.com/google/uuid"
)

// UserService handles profile reads, own-content listings, newsletter
// subscription and account deactivation.
type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, commentRepo: commentRepo}
}

// Profile returns the caller's profile. A deactivated account reads as not
// found.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.NewNotFoundError("User", userID)
	}
	return models.NewUserDTO(user), nil
}

// MyPosts lists the caller's own posts with the owner-facing author label.
// Bodies follow the list contract (omitted), except soft-deleted rows
// which read as redacted.
func (s *UserService) MyPosts(ctx context.Context, userID uint, limit int, sort string) ([]*models.PostDTO, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID, limit, sort)
	if err != nil {
		return nil, err
	}
	dtos := make([]*models.PostDTO, 0, len(posts))
	for _, p := range posts {
		dto := projectPost(p, false)
		dto.AuthorUsername = models.OwnPostsAuthor
		if p.IsDeleted {
			dto.Body = models.RedactedBody
			dto.ImageURL = nil
			dto.Latitude = nil
			dto.Longitude = nil
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// MyComments lists the caller's own comments with the owner-facing author
// label; soft-deleted rows read as redacted.
func (s *UserService) MyComments(ctx context.Context, userID uint, limit int, sort string) ([]*models.CommentDTO, error) {
	comments, err := s.commentRepo.ListByUser(ctx, userID, limit, sort)
	if err != nil {
		return nil, err
	}
	dtos := make([]*models.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dto := projectComment(c)
		dto.AuthorUsername = models.OwnCommentsAuthor
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// Deactivate redacts the account in place: identity fields are overwritten
// with guaranteed-unique placeholders, the password hash is cleared so the
// old credentials can never verify again, and IsActive goes false. The
// row is never deleted. A placeholder collision is an accepted
// low-probability risk surfaced as a server error, not retried.
func (s *UserService) Deactivate(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return models.NewNotFoundError("User", userID)
	}

	user.Username = fmt.Sprintf(models.DeactivatedPattern, user.ID, uuid.New().String()[:8])
	user.Email = fmt.Sprintf("%d@%s", user.ID, models.DeactivatedDomain)
	user.PasswordHash = ""
	user.IsSubscribed = false
	user.IsActive = false

	if err := s.userRepo.Update(ctx, user); err != nil {
		var appErr *models.AppError
		// A conflict here means the placeholder collided; surface as 500.
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return models.NewInternalError(appErr)
		}
		return err
	}
	return nil
}

// SetSubscription flips the newsletter flag. Setting the current state is
// a no-op, keeping the endpoint idempotent.
func (s *UserService) SetSubscription(ctx context.Context, userID uint, subscribed bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsSubscribed == subscribed {
		return nil
	}
	user.IsSubscribed = subscribed
	return s.userRepo.Update(ctx, user)
}

// SubscriptionStatus reads the newsletter flag.
func (s *UserService) SubscriptionStatus(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsSubscribed, nil
}
