package server

import (
	"tourit/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit   = 25
	defaultOwnedLimit  = 50
	maxPaginationLimit = 100
)

// parseID extracts a route parameter by name as a positive uint. On failure
// it returns a validation error for the caller to pass to respondError.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// parseLimit extracts the limit query parameter, clamped to [1, 100].
func parseLimit(c *fiber.Ctx, defaultLimit int) int {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	return limit
}

// respondError maps an application error to its HTTP status and writes the
// standardized error body.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// currentUserID reads the authenticated user's ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}
