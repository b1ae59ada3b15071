package server

import (
	"log/slog"

	"tourit/internal/middleware"
	"tourit/internal/models"
	"tourit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description Non-deleted posts of active authors, optionally filtered by country code
// @Tags posts
// @Produce json
// @Param sortBy query string false "new (default) or top"
// @Param limit query int false "max results (default 25, cap 100)"
// @Param countryCode query string false "case-insensitive country code filter"
// @Success 200 {array} models.PostDTO
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit := parseLimit(c, defaultListLimit)
	sort := c.Query("sortBy", "new")
	countryCode := c.Query("countryCode")

	posts, err := s.postService.List(c.Context(), limit, sort, countryCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a single post including its body
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostDTO
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,body=string,countryId=int,categoryIds=[]int,tagIds=[]int,latitude=number,longitude=number} true "New post"
// @Success 201 {object} models.PostDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Title       string   `json:"title"`
		Body        string   `json:"body"`
		CountryID   uint     `json:"countryId"`
		CategoryIDs []uint   `json:"categoryIds"`
		TagIDs      []uint   `json:"tagIds"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), service.CreatePostInput{
		UserID:      userID,
		Title:       req.Title,
		Body:        req.Body,
		CountryID:   req.CountryID,
		CategoryIDs: req.CategoryIDs,
		TagIDs:      req.TagIDs,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		slog.Any("post_id", post.ID))
	return c.Status(fiber.StatusCreated).JSON(post)
}

// VotePost handles POST /api/posts/:id/vote
// @Summary Toggle a vote on a post
// @Description Same direction removes the vote, opposite direction flips it
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{direction=int} true "+1 or -1"
// @Success 200 {object} object{score=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/vote [post]
func (s *Server) VotePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Direction int `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	score, err := s.postService.Vote(c.Context(), userID, postID, req.Direction)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"score": score,
	})
}

// UploadPostImage handles POST /api/posts/:id/image
// @Summary Upload an image for an owned post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Post ID"
// @Param imageFile formData file true "jpg, jpeg, png or webp, max 5 MB"
// @Success 200 {object} object{imageUrl=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/image [post]
func (s *Server) UploadPostImage(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("imageFile")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("imageFile is required"))
	}

	imageURL, err := s.imageService.UploadPostImage(c.Context(), userID, postID, fileHeader)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"imageUrl": imageURL,
	})
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Redact an owned post
// @Description Soft-delete: the row, its votes and comments survive
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.postService.Delete(c.Context(), userID, postID); err != nil {
		return respondError(c, err)
	}

	// Best-effort cleanup after the redaction commits.
	if rmErr := s.imageService.RemovePostFiles(postID); rmErr != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to remove post image files",
			slog.Any("post_id", postID),
			slog.String("error", rmErr.Error()))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
