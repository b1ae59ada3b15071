package repository

import (
	"context"
	"errors"

	"tourit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postScoreSelect pulls the aggregate vote score alongside the row. Scores
// are never persisted; every read recomputes them.
const postScoreSelect = "posts.*, " +
	"(SELECT COALESCE(SUM(vote_type), 0) FROM votes WHERE votes.post_id = posts.id) AS score"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit int, sort, countryCode string) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit int, sort string) ([]*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Redact(ctx context.Context, id uint) error
	SetImageURL(ctx context.Context, id uint, url string) error
	ToggleVote(ctx context.Context, userID, postID uint, direction int) (int, error)
	Score(ctx context.Context, postID uint) (int, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post together with its category and tag join rows in
// one transaction (GORM writes associations inside the create transaction).
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(postScoreSelect).
		Preload("User").
		Preload("Country").
		Preload("Categories").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns non-deleted posts whose authors are still active, optionally
// filtered by country code (case-insensitive).
func (r *postRepository) List(ctx context.Context, limit int, sort, countryCode string) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postScoreSelect).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.is_deleted = ?", false).
		Where("users.is_active = ?", true)

	if countryCode != "" {
		q = q.Joins("JOIN countries ON countries.id = posts.country_id").
			Where("LOWER(countries.code) = LOWER(?)", countryCode)
	}

	err := applySort(q, sort).
		Limit(limit).
		Preload("User").
		Preload("Country").
		Preload("Categories").
		Preload("Tags").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByUser returns the caller's posts. Redacted posts drop out naturally:
// redaction nulls user_id, so only rows still attributed to the user match.
func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit int, sort string) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postScoreSelect).
		Where("posts.user_id = ?", userID)

	err := applySort(q, sort).
		Limit(limit).
		Preload("Country").
		Preload("Categories").
		Preload("Tags").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
// score is a SELECT alias from postScoreSelect; PostgreSQL allows
// referencing it in ORDER BY within the same query level.
func applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "top":
		return db.Order("score DESC, posts.created_at DESC")
	default: // "new" and anything unrecognized
		return db.Order("posts.created_at DESC")
	}
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Redact soft-deletes the post: the row, its votes and its comment thread
// survive, but author, body, image, coordinates and the category/tag links
// are scrubbed.
func (r *postRepository) Redact(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := models.Post{ID: id}
		if err := tx.Model(&post).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"body":       nil,
				"user_id":    nil,
				"image_url":  nil,
				"latitude":   nil,
				"longitude":  nil,
			}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) SetImageURL(ctx context.Context, id uint, url string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("image_url", url).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleVote applies the idempotent toggle inside a single transaction with
// a row lock on the user's existing vote, so two concurrent requests from
// the same user cannot produce a lost update. Same direction removes the
// vote, opposite direction flips it, no prior vote creates one (post
// existence is only checked on that path). Returns the recomputed score.
func (r *postRepository) ToggleVote(ctx context.Context, userID, postID uint, direction int) (int, error) {
	var score int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.Vote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("post_id = ? AND user_id = ?", postID, userID).
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
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return models.NewNotFoundError("Post", postID)
			}
			newVote := models.Vote{UserID: userID, PostID: postID, VoteType: direction}
			if err := tx.Create(&newVote).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&models.Vote{}).
			Where("post_id = ?", postID).
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

// Score recomputes the post's total vote score by aggregation.
func (r *postRepository) Score(ctx context.Context, postID uint) (int, error) {
	var score int
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(vote_type), 0)").
		Scan(&score).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return score, nil
}
