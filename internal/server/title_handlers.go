package server

import (
	"critica/internal/models"
	"critica/internal/repository"
	"critica/internal/service"

	"github.com/gofiber/fiber/v2"
)

type titlePayload struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

func (p titlePayload) input() service.TitleInput {
	return service.TitleInput{
		Name:         p.Name,
		Year:         p.Year,
		Description:  p.Description,
		CategorySlug: p.Category,
		GenreSlugs:   p.Genre,
	}
}

// ListTitles godoc
// @Summary List titles
// @Description Lists titles with their computed average rating. Supports
// @Description filtering by category slug, genre slug, name substring and
// @Description exact year; filters combine with AND.
// @Tags titles
// @Produce json
// @Param category query string false "Category slug"
// @Param genre query string false "Genre slug"
// @Param name query string false "Name substring"
// @Param year query int false "Exact year"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Router /titles/ [get]
func (s *Server) ListTitles(c *fiber.Ctx) error {
	limit, offset := pageParams(c)

	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if c.Query("year") != "" {
		year := c.QueryInt("year")
		filter.Year = &year
	}

	titles, total, err := s.titleService.ListTitles(c.UserContext(), filter, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(c, total, limit, offset, titles))
}

// GetTitle godoc
// @Summary Retrieve a title
// @Tags titles
// @Produce json
// @Param title_id path int true "Title ID"
// @Success 200 {object} models.Title
// @Failure 404 {object} models.ErrorResponse
// @Router /titles/{title_id}/ [get]
func (s *Server) GetTitle(c *fiber.Ctx) error {
	id, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}

	title, err := s.titleService.GetTitle(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(title)
}

// CreateTitle godoc
// @Summary Create a title (admin only)
// @Tags titles
// @Accept json
// @Produce json
// @Param request body titlePayload true "Title payload"
// @Success 201 {object} models.Title
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/ [post]
func (s *Server) CreateTitle(c *fiber.Ctx) error {
	var req titlePayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	title, err := s.titleService.CreateTitle(c.UserContext(), callerFrom(c), req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

// UpdateTitle godoc
// @Summary Partially update a title (admin only)
// @Description Omitted fields keep their values. An omitted or empty
// @Description genre list keeps the existing genre links; a non-empty
// @Description list replaces them wholesale.
// @Tags titles
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param request body titlePayload true "Partial title payload"
// @Success 200 {object} models.Title
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/ [patch]
func (s *Server) UpdateTitle(c *fiber.Ctx) error {
	id, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}

	var req titlePayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	title, err := s.titleService.UpdateTitle(c.UserContext(), callerFrom(c), id, req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(title)
}

// DeleteTitle godoc
// @Summary Delete a title (admin only)
// @Description Deleting a title removes its reviews and their comments.
// @Tags titles
// @Param title_id path int true "Title ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/ [delete]
func (s *Server) DeleteTitle(c *fiber.Ctx) error {
	id, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}

	if err := s.titleService.DeleteTitle(c.UserContext(), callerFrom(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
