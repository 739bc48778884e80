package server

import (
	"time"

	"critica/internal/models"
	"critica/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentPayload struct {
	Text string `json:"text"`
}

type commentResponse struct {
	ID       uint      `json:"id"`
	Text     string    `json:"text"`
	Author   string    `json:"author"`
	ReviewID uint      `json:"review_id"`
	PubDate  time.Time `json:"pub_date"`
}

func toCommentResponse(m *models.Comment) commentResponse {
	return commentResponse{
		ID:       m.ID,
		Text:     m.Text,
		Author:   m.Author.Username,
		ReviewID: m.ReviewID,
		PubDate:  m.PubDate,
	}
}

func toCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	return out
}

func (s *Server) commentPath(c *fiber.Ctx) (titleID, reviewID uint, err error) {
	titleID, err = uintParam(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = uintParam(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// ListComments godoc
// @Summary List comments on a review
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/ [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	titleID, reviewID, err := s.commentPath(c)
	if err != nil {
		return fail(c, err)
	}
	limit, offset := pageParams(c)

	comments, total, err := s.commentService.ListComments(c.UserContext(), titleID, reviewID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(c, total, limit, offset, toCommentResponses(comments)))
}

// GetComment godoc
// @Summary Retrieve a comment
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} commentResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id}/ [get]
func (s *Server) GetComment(c *fiber.Ctx) error {
	titleID, reviewID, err := s.commentPath(c)
	if err != nil {
		return fail(c, err)
	}
	commentID, err := uintParam(c, "comment_id")
	if err != nil {
		return fail(c, err)
	}

	comment, err := s.commentService.GetComment(c.UserContext(), titleID, reviewID, commentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toCommentResponse(comment))
}

// CreateComment godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param request body commentPayload true "Comment payload"
// @Success 201 {object} commentResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments/ [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	titleID, reviewID, err := s.commentPath(c)
	if err != nil {
		return fail(c, err)
	}

	var req commentPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), callerFrom(c), service.CreateCommentInput{
		TitleID:  titleID,
		ReviewID: reviewID,
		Text:     req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCommentResponse(comment))
}

// UpdateComment godoc
// @Summary Partially update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Param request body commentPayload true "Partial comment payload"
// @Success 200 {object} commentResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id}/ [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	titleID, reviewID, err := s.commentPath(c)
	if err != nil {
		return fail(c, err)
	}
	commentID, err := uintParam(c, "comment_id")
	if err != nil {
		return fail(c, err)
	}

	var req commentPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), callerFrom(c), service.UpdateCommentInput{
		TitleID:   titleID,
		ReviewID:  reviewID,
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toCommentResponse(comment))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id}/ [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	titleID, reviewID, err := s.commentPath(c)
	if err != nil {
		return fail(c, err)
	}
	commentID, err := uintParam(c, "comment_id")
	if err != nil {
		return fail(c, err)
	}

	if err := s.commentService.DeleteComment(c.UserContext(), callerFrom(c), titleID, reviewID, commentID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
