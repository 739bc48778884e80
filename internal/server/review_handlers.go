package server

import (
	"time"

	"critica/internal/models"
	"critica/internal/service"

	"github.com/gofiber/fiber/v2"
)

type reviewPayload struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// reviewResponse flattens the author to a username so the nested user
// record (email included) never leaks through a public endpoint.
type reviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	TitleID uint      `json:"title_id"`
	PubDate time.Time `json:"pub_date"`
}

func toReviewResponse(r *models.Review) reviewResponse {
	return reviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		TitleID: r.TitleID,
		PubDate: r.PubDate,
	}
}

func toReviewResponses(reviews []models.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out
}

// ListReviews godoc
// @Summary List reviews for a title
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /titles/{title_id}/reviews/ [get]
func (s *Server) ListReviews(c *fiber.Ctx) error {
	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}
	limit, offset := pageParams(c)

	reviews, total, err := s.reviewService.ListReviews(c.UserContext(), titleID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(c, total, limit, offset, toReviewResponses(reviews)))
}

// GetReview godoc
// @Summary Retrieve a review
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 200 {object} reviewResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/ [get]
func (s *Server) GetReview(c *fiber.Ctx) error {
	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}
	reviewID, err := uintParam(c, "review_id")
	if err != nil {
		return fail(c, err)
	}

	review, err := s.reviewService.GetReview(c.UserContext(), titleID, reviewID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toReviewResponse(review))
}

// CreateReview godoc
// @Summary Create a review for a title
// @Description One review per user per title; a second attempt is a 400.
// @Tags reviews
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param request body reviewPayload true "Review payload"
// @Success 201 {object} reviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/ [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}

	var req reviewPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	in := service.CreateReviewInput{TitleID: titleID}
	if req.Text != nil {
		in.Text = *req.Text
	}
	if req.Score != nil {
		in.Score = *req.Score
	}

	review, err := s.reviewService.CreateReview(c.UserContext(), callerFrom(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReviewResponse(review))
}

// UpdateReview godoc
// @Summary Partially update a review
// @Description Only the author, moderators and admins may edit.
// @Tags reviews
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param request body reviewPayload true "Partial review payload"
// @Success 200 {object} reviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/ [patch]
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}
	reviewID, err := uintParam(c, "review_id")
	if err != nil {
		return fail(c, err)
	}

	var req reviewPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.UpdateReview(c.UserContext(), callerFrom(c), service.UpdateReviewInput{
		TitleID:  titleID,
		ReviewID: reviewID,
		Text:     req.Text,
		Score:    req.Score,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toReviewResponse(review))
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/ [delete]
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return fail(c, err)
	}
	reviewID, err := uintParam(c, "review_id")
	if err != nil {
		return fail(c, err)
	}

	if err := s.reviewService.DeleteReview(c.UserContext(), callerFrom(c), titleID, reviewID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
