package service

import (
	"context"

	"tourit/internal/models"
	"tourit/internal/repository"
	"tourit/internal/validation"
)

// CommentService coordinates comment creation, voting, redaction and
// comment-tree reconstruction.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// CreateCommentInput carries the fields for a new comment.
type CreateCommentInput struct {
	UserID          uint
	PostID          uint
	Body            string
	ParentCommentID *uint
}

// Create validates and persists a comment. The parent, when given, must be
// a comment on the same post.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.CommentDTO, error) {
	if err := validation.ValidateCommentBody(in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	exists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	if in.ParentCommentID != nil {
		ok, err := s.commentRepo.ExistsInPost(ctx, *in.ParentCommentID, in.PostID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewNotFoundError("Comment", *in.ParentCommentID)
		}
	}

	userID := in.UserID
	body := in.Body
	comment := &models.Comment{
		UserID:          &userID,
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
		Body:            &body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return projectComment(created), nil
}

// ListTree returns the post's comments as a tree of root comments with
// replies populated to arbitrary depth.
//
// Redaction policy is redact-in-place: soft-deleted comments and comments
// of inactive authors stay in the tree with a placeholder body and author,
// so reply chains under a removed parent remain intact.
func (s *CommentService) ListTree(ctx context.Context, postID uint) ([]*models.CommentDTO, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Two-pass build: map every comment to its node, then attach each node
	// to its parent when the parent is in the set, else treat it as a root.
	// Input is ordered created_at ascending, so a node's subtree is already
	// attached before the node itself is nested.
	nodes := make(map[uint]*models.CommentDTO, len(comments))
	for _, c := range comments {
		nodes[c.ID] = projectComment(c)
	}

	roots := make([]*models.CommentDTO, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentCommentID != nil {
			if parent, ok := nodes[*c.ParentCommentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// Vote applies the toggle for the given direction and returns the
// recomputed score.
func (s *CommentService) Vote(ctx context.Context, userID, commentID uint, direction int) (int, error) {
	if direction != 1 && direction != -1 {
		return 0, models.NewValidationError("direction must be 1 or -1")
	}
	return s.commentRepo.ToggleVote(ctx, userID, commentID, direction)
}

// Delete redacts the caller's own comment; replies stay attached.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID == nil || *comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Redact(ctx, commentID)
}

// projectComment builds the DTO for a single comment, applying the
// redact-in-place placeholders.
func projectComment(c *models.Comment) *models.CommentDTO {
	dto := &models.CommentDTO{
		ID:              c.ID,
		PostID:          c.PostID,
		ParentCommentID: c.ParentCommentID,
		Score:           c.Score,
		CreatedAt:       c.CreatedAt,
		Replies:         make([]*models.CommentDTO, 0),
	}

	redacted := c.IsDeleted || c.UserID == nil || (c.User != nil && !c.User.IsActive)
	if redacted || c.Body == nil {
		dto.Body = models.RedactedBody
		dto.AuthorUsername = models.UnknownAuthor
	} else {
		dto.Body = *c.Body
		dto.AuthorUsername = models.UnknownAuthor
		if c.User != nil {
			dto.AuthorUsername = c.User.Username
		}
	}
	return dto
}
