// Package service implements the business logic between HTTP handlers and
// repositories.
package service

import (
	"context"

	"tourit/internal/models"
	"tourit/internal/repository"
	"tourit/internal/validation"
)

// PostService coordinates post creation, listing, voting and redaction.
type PostService struct {
	postRepo repository.PostRepository
	refRepo  repository.ReferenceRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository, refRepo repository.ReferenceRepository) *PostService {
	return &PostService{postRepo: postRepo, refRepo: refRepo}
}

// CreatePostInput carries the validated fields for a new post.
type CreatePostInput struct {
	UserID      uint
	Title       string
	Body        string
	CountryID   uint
	CategoryIDs []uint
	TagIDs      []uint
	Latitude    *float64
	Longitude   *float64
}

// Create validates the input, filters category/tag ids to the valid subset
// and persists the post with its join rows in one transaction.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.PostDTO, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostBody(in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.CountryID == 0 {
		return nil, models.NewValidationError("countryId is required")
	}
	if err := validation.ValidateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	exists, err := s.refRepo.CountryExists(ctx, in.CountryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Country", in.CountryID)
	}

	// Unknown category/tag ids are silently filtered to the valid subset.
	categories, err := s.refRepo.GetCategoriesByIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}
	tags, err := s.refRepo.GetTagsByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	userID := in.UserID
	body := in.Body
	post := &models.Post{
		UserID:     &userID,
		Title:      in.Title,
		Body:       &body,
		CountryID:  in.CountryID,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Categories: categories,
		Tags:       tags,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload for the preloaded author/country and the computed score (0).
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return projectPost(created, true), nil
}

// Get returns the full post DTO including body.
func (s *PostService) Get(ctx context.Context, id uint) (*models.PostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectPost(post, true), nil
}

// List returns post DTOs without bodies (list view contract).
func (s *PostService) List(ctx context.Context, limit int, sort, countryCode string) ([]*models.PostDTO, error) {
	posts, err := s.postRepo.List(ctx, limit, sort, countryCode)
	if err != nil {
		return nil, err
	}
	dtos := make([]*models.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, projectPost(p, false))
	}
	return dtos, nil
}

// Vote applies the toggle for the given direction and returns the
// recomputed score.
func (s *PostService) Vote(ctx context.Context, userID, postID uint, direction int) (int, error) {
	if direction != 1 && direction != -1 {
		return 0, models.NewValidationError("direction must be 1 or -1")
	}
	return s.postRepo.ToggleVote(ctx, userID, postID, direction)
}

// Delete redacts the caller's own post. Only the owner may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID == nil || *post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Redact(ctx, postID)
}

// projectPost builds the public DTO. Redacted posts keep their row but show
// placeholder author/body; the list view omits the body entirely.
func projectPost(p *models.Post, includeBody bool) *models.PostDTO {
	dto := &models.PostDTO{
		ID:            p.ID,
		Title:         p.Title,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		ImageURL:      p.ImageURL,
		Score:         p.Score,
		CategoryNames: make([]string, 0, len(p.Categories)),
		TagNames:      make([]string, 0, len(p.Tags)),
		CreatedAt:     p.CreatedAt,
	}

	if includeBody {
		if p.IsDeleted || p.Body == nil {
			dto.Body = models.RedactedBody
		} else {
			dto.Body = *p.Body
		}
	}

	dto.AuthorUsername = models.UnknownAuthor
	if p.UserID != nil && p.User != nil {
		dto.AuthorUsername = p.User.Username
	}

	if p.Country != nil {
		dto.CountryName = p.Country.Name
		dto.CountryCode = p.Country.Code
	}

	for _, c := range p.Categories {
		dto.CategoryNames = append(dto.CategoryNames, c.Name)
	}
	for _, t := range p.Tags {
		dto.TagNames = append(dto.TagNames, t.Name)
	}

	return dto
}
