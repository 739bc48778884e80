package service

import (
	"context"

	"critica/internal/models"
	"critica/internal/policy"
	"critica/internal/repository"
)

// CommentService manages comments nested under a title's review. The
// full parent chain (title, then review scoped to it) is resolved on
// every operation.
type CommentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

type CreateCommentInput struct {
	TitleID  uint
	ReviewID uint
	Text     string
}

type UpdateCommentInput struct {
	TitleID   uint
	ReviewID  uint
	CommentID uint
	Text      string
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

func (s *CommentService) resolveReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetForTitle(ctx, titleID, reviewID)
}

func (s *CommentService) ListComments(ctx context.Context, titleID, reviewID uint, limit, offset int) ([]models.Comment, int64, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, limit, offset)
}

func (s *CommentService) GetComment(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetForReview(ctx, reviewID, commentID)
}

func (s *CommentService) CreateComment(ctx context.Context, caller policy.Caller, in CreateCommentInput) (*models.Comment, error) {
	if !policy.Allow(policy.VerbCreate, policy.ResourceComments, caller) {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	review, err := s.resolveReview(ctx, in.TitleID, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if in.Text == "" {
		return nil, models.NewFieldValidationError("text", "This field is required")
	}

	comment := &models.Comment{
		Text:     in.Text,
		AuthorID: caller.UserID,
		ReviewID: review.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetForReview(ctx, review.ID, comment.ID)
}

func (s *CommentService) UpdateComment(ctx context.Context, caller policy.Caller, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, in.TitleID, in.ReviewID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if !policy.AllowObject(policy.VerbUpdate, policy.ResourceComments, caller, comment.AuthorID) {
		return nil, models.NewPermissionDeniedError("You can only edit your own comments")
	}
	if in.Text == "" {
		return nil, models.NewFieldValidationError("text", "This field may not be blank")
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetForReview(ctx, in.ReviewID, in.CommentID)
}

func (s *CommentService) DeleteComment(ctx context.Context, caller policy.Caller, titleID, reviewID, commentID uint) error {
	comment, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !policy.AllowObject(policy.VerbDelete, policy.ResourceComments, caller, comment.AuthorID) {
		return models.NewPermissionDeniedError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
