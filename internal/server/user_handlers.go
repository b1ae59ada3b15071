package server

import (
	"log/slog"

	"tourit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserDTO
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	profile, err := s.userService.Profile(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetMyPosts handles GET /api/users/me/posts
// @Summary List the caller's own posts
// @Tags users
// @Produce json
// @Param sortBy query string false "new (default) or top"
// @Param limit query int false "max results (default 50, cap 100)"
// @Success 200 {array} models.PostDTO
// @Security BearerAuth
// @Router /users/me/posts [get]
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := currentUserID(c)
	limit := parseLimit(c, defaultOwnedLimit)
	sort := c.Query("sortBy", "new")

	posts, err := s.userService.MyPosts(c.Context(), userID, limit, sort)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetMyComments handles GET /api/users/me/comments
// @Summary List the caller's own comments
// @Tags users
// @Produce json
// @Param sortBy query string false "new (default) or score"
// @Param limit query int false "max results (default 50, cap 100)"
// @Success 200 {array} models.CommentDTO
// @Security BearerAuth
// @Router /users/me/comments [get]
func (s *Server) GetMyComments(c *fiber.Ctx) error {
	userID := currentUserID(c)
	limit := parseLimit(c, defaultOwnedLimit)
	sort := c.Query("sortBy", "new")

	comments, err := s.userService.MyComments(c.Context(), userID, limit, sort)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// DeactivateAccount handles DELETE /api/users/me
// @Summary Deactivate the caller's account
// @Description Irreversible: identity fields are overwritten with placeholders and the password hash is cleared
// @Tags users
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (s *Server) DeactivateAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.userService.Deactivate(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account deactivated",
		slog.Any("user_id", userID))
	return c.SendStatus(fiber.StatusNoContent)
}
