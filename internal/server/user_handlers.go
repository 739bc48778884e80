package server

import (
	"critica/internal/service"

	"critica/internal/models"

	"github.com/gofiber/fiber/v2"
)

type userPayload struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (p userPayload) updateInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Bio:       p.Bio,
		Role:      p.Role,
	}
}

// ListUsers godoc
// @Summary List users (admin only)
// @Tags users
// @Produce json
// @Param search query string false "Filter by username substring"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/ [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	users, total, err := s.userService.ListUsers(c.UserContext(), callerFrom(c), c.Query("search"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(c, total, limit, offset, users))
}

// CreateUser godoc
// @Summary Create a user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/ [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req userPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	in := service.CreateUserInput{}
	if req.Username != nil {
		in.Username = *req.Username
	}
	if req.Email != nil {
		in.Email = *req.Email
	}
	if req.FirstName != nil {
		in.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		in.LastName = *req.LastName
	}
	if req.Bio != nil {
		in.Bio = *req.Bio
	}
	if req.Role != nil {
		in.Role = *req.Role
	}

	user, err := s.userService.CreateUser(c.UserContext(), callerFrom(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser godoc
// @Summary Retrieve a user by username (admin only)
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{username}/ [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.UserContext(), callerFrom(c), c.Params("username"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateUser godoc
// @Summary Partially update a user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{username}/ [patch]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req userPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.UserContext(), callerFrom(c), c.Params("username"), req.updateInput())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary Delete a user (admin only)
// @Tags users
// @Param username path string true "Username"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{username}/ [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	if err := s.userService.DeleteUser(c.UserContext(), callerFrom(c), c.Params("username")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMe godoc
// @Summary Retrieve the caller's own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Security BearerAuth
// @Router /users/me/ [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetMe(c.UserContext(), callerFrom(c).UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateMe godoc
// @Summary Partially update the caller's own profile
// @Description Role changes are ignored here; only an admin can promote.
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me/ [patch]
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	var req userPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateMe(c.UserContext(), callerFrom(c).UserID, req.updateInput())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}
