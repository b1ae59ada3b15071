package server

import (
	"tourit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCountries handles GET /api/countries
// @Summary List countries ordered by name
// @Tags reference
// @Produce json
// @Success 200 {array} models.Country
// @Router /countries [get]
func (s *Server) GetCountries(c *fiber.Ctx) error {
	countries, err := s.refRepo.ListCountries(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(countries)
}

// GetCountryByCode handles GET /api/countries/code/:code
// @Summary Look up a country by its code (case-insensitive)
// @Tags reference
// @Produce json
// @Param code path string true "Country code"
// @Success 200 {object} models.Country
// @Failure 404 {object} models.ErrorResponse
// @Router /countries/code/{code} [get]
func (s *Server) GetCountryByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Country code is required"))
	}

	country, err := s.refRepo.GetCountryByCode(c.Context(), code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(country)
}

// GetCategories handles GET /api/categories
// @Summary List categories ordered by name
// @Tags reference
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.refRepo.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// GetTags handles GET /api/tags
// @Summary List tags ordered by name
// @Tags reference
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.refRepo.ListTags(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}
