package server

import (
	"github.com/gofiber/fiber/v2"
)

// SubscribeNewsletter handles POST /api/newsletter/subscribe
// @Summary Subscribe to the newsletter
// @Description Idempotent: subscribing while subscribed is a no-op
// @Tags newsletter
// @Produce json
// @Success 200 {object} object{isSubscribed=bool}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /newsletter/subscribe [post]
func (s *Server) SubscribeNewsletter(c *fiber.Ctx) error {
	return s.setNewsletterSubscription(c, true)
}

// UnsubscribeNewsletter handles POST /api/newsletter/unsubscribe
// @Summary Unsubscribe from the newsletter
// @Description Idempotent: unsubscribing while unsubscribed is a no-op
// @Tags newsletter
// @Produce json
// @Success 200 {object} object{isSubscribed=bool}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /newsletter/unsubscribe [post]
func (s *Server) UnsubscribeNewsletter(c *fiber.Ctx) error {
	return s.setNewsletterSubscription(c, false)
}

func (s *Server) setNewsletterSubscription(c *fiber.Ctx, subscribed bool) error {
	userID := currentUserID(c)

	if err := s.userService.SetSubscription(c.Context(), userID, subscribed); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"isSubscribed": subscribed,
	})
}

// NewsletterStatus handles GET /api/newsletter/status
// @Summary Read the caller's newsletter subscription flag
// @Tags newsletter
// @Produce json
// @Success 200 {object} object{isSubscribed=bool}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /newsletter/status [get]
func (s *Server) NewsletterStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)

	subscribed, err := s.userService.SubscriptionStatus(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"isSubscribed": subscribed,
	})
}
