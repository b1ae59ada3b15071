package server

import (
	"tourit/internal/models"
	"tourit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
// @Summary Get a post's comment tree
// @Description Root comments with replies populated to arbitrary depth; redacted comments stay in-tree with placeholder body
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.CommentDTO
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	tree, err := s.commentService.ListTree(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tree)
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{body=string,parentCommentId=int} true "New comment"
// @Success 201 {object} models.CommentDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Body            string `json:"body"`
		ParentCommentID *uint  `json:"parentCommentId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.Context(), service.CreateCommentInput{
		UserID:          userID,
		PostID:          postID,
		Body:            req.Body,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// VoteComment handles POST /api/comments/:id/vote
// @Summary Toggle a vote on a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body object{direction=int} true "+1 or -1"
// @Success 200 {object} object{score=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id}/vote [post]
func (s *Server) VoteComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	commentID, err := parseID(c, "id")
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

	score, err := s.commentService.Vote(c.Context(), userID, commentID, req.Direction)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"score": score,
	})
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Redact an owned comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	commentID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.commentService.Delete(c.Context(), userID, commentID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
