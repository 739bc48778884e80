package server

import (
	"critica/internal/models"
	"critica/internal/service"

	"github.com/gofiber/fiber/v2"
)

type termPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Param search query string false "Filter by name substring"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Router /categories/ [get]
func (s *Server) ListCategories(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	categories, total, err := s.catalogService.ListCategories(c.UserContext(), c.Query("search"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(c, total, limit, offset, categories))
}

// CreateCategory godoc
// @Summary Create a category (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body termPayload true "Category payload"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /categories/ [post]
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req termPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	category, err := s.catalogService.CreateCategory(c.UserContext(), callerFrom(c), service.CreateTermInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// DeleteCategory godoc
// @Summary Delete a category by slug (admin only)
// @Tags catalog
// @Param slug path string true "Category slug"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /categories/{slug}/ [delete]
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	if err := s.catalogService.DeleteCategory(c.UserContext(), callerFrom(c), c.Params("slug")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListGenres godoc
// @Summary List genres
// @Tags catalog
// @Produce json
// @Param search query string false "Filter by name substring"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Router /genres/ [get]
func (s *Server) ListGenres(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	genres, total, err := s.catalogService.ListGenres(c.UserContext(), c.Query("search"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(c, total, limit, offset, genres))
}

// CreateGenre godoc
// @Summary Create a genre (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body termPayload true "Genre payload"
// @Success 201 {object} models.Genre
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /genres/ [post]
func (s *Server) CreateGenre(c *fiber.Ctx) error {
	var req termPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	genre, err := s.catalogService.CreateGenre(c.UserContext(), callerFrom(c), service.CreateTermInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

// DeleteGenre godoc
// @Summary Delete a genre by slug (admin only)
// @Tags catalog
// @Param slug path string true "Genre slug"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /genres/{slug}/ [delete]
func (s *Server) DeleteGenre(c *fiber.Ctx) error {
	if err := s.catalogService.DeleteGenre(c.UserContext(), callerFrom(c), c.Params("slug")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
