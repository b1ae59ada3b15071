package repository

import (
	"context"
	"errors"

	"tourit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const commentScoreSelect = "comments.*, " +
	"(SELECT COALESCE(SUM(vote_type), 0) FROM comment_votes WHERE comment_votes.comment_id = comments.id) AS score"

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID uint, limit int, sort string) ([]*models.Comment, error)
	ExistsInPost(ctx context.Context, commentID, postID uint) (bool, error)
	Redact(ctx context.Context, id uint) error
	ToggleVote(ctx context.Context, userID, commentID uint, direction int) (int, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Select(commentScoreSelect).
		Preload("User").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost fetches the post's full comment set flat, ordered by creation
// time ascending. The tree is reconstructed in the service layer; fetching
// flat keeps this a single query regardless of nesting depth.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(commentScoreSelect).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Preload("User").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ListByUser returns the caller's comments. As with posts, redacted
// comments have user_id nulled and so drop out.
func (r *commentRepository) ListByUser(ctx context.Context, userID uint, limit int, sort string) ([]*models.Comment, error) {
	var comments []*models.Comment
	q := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(commentScoreSelect).
		Where("comments.user_id = ?", userID)

	switch sort {
	case "score":
		q = q.Order("score DESC, comments.created_at DESC")
	default: // "new"
		q = q.Order("comments.created_at DESC")
	}

	err := q.Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ExistsInPost reports whether the comment exists and belongs to the given post.
func (r *commentRepository) ExistsInPost(ctx context.Context, commentID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND post_id = ?", commentID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Redact soft-deletes the comment in place; replies stay attached.
func (r *commentRepository) Redact(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"body":       nil,
			"user_id":    nil,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleVote mirrors the post vote toggle against comment_votes.
func (r *commentRepository) ToggleVote(ctx context.Context, userID, commentID uint, direction int) (int, error) {
	var score int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.CommentVote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			First(&vote).Error

		switch {
		case err == nil:
			if vote.VoteType == direction {
				if err := tx.Delete(&vote).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&vote).Update("vote_type", direction).Error; err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			var count int64
			if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return models.NewNotFoundError("Comment", commentID)
			}
			newVote := models.CommentVote{UserID: userID, CommentID: commentID, VoteType: direction}
			if err := tx.Create(&newVote).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&models.CommentVote{}).
			Where("comment_id = ?", commentID).
			Select("COALESCE(SUM(vote_type), 0)").
			Scan(&score).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(err)
	}
	return score, nil
}
