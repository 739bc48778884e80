package service

import (
	"context"

	"critica/internal/middleware"
	"critica/internal/models"
	"critica/internal/policy"
	"critica/internal/repository"
	"critica/internal/validation"
)

// ReviewService manages reviews nested under titles. Every operation
// resolves the parent title first, so a dangling title id is a 404
// before any review semantics apply.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

type CreateReviewInput struct {
	TitleID uint
	Text    string
	Score   int
}

type UpdateReviewInput struct {
	TitleID  uint
	ReviewID uint
	Text     *string
	Score    *int
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

func (s *ReviewService) ListReviews(ctx context.Context, titleID uint, limit, offset int) ([]models.Review, int64, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, limit, offset)
}

func (s *ReviewService) GetReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetForTitle(ctx, titleID, reviewID)
}

func (s *ReviewService) CreateReview(ctx context.Context, caller policy.Caller, in CreateReviewInput) (*models.Review, error) {
	if !policy.Allow(policy.VerbCreate, policy.ResourceReviews, caller) {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	if _, err := s.titleRepo.GetByID(ctx, in.TitleID); err != nil {
		return nil, err
	}
	if in.Text == "" {
		return nil, models.NewFieldValidationError("text", "This field is required")
	}
	if err := validation.ValidateScore(in.Score); err != nil {
		return nil, err
	}

	review := &models.Review{
		Text:     in.Text,
		Score:    in.Score,
		AuthorID: caller.UserID,
		TitleID:  in.TitleID,
	}
	// The one-review-per-author constraint lives in the database; a
	// duplicate surfaces here as a validation error.
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "Review created", "title_id", in.TitleID, "review_id", review.ID)
	return s.reviewRepo.GetForTitle(ctx, in.TitleID, review.ID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, caller policy.Caller, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.GetReview(ctx, in.TitleID, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if !policy.AllowObject(policy.VerbUpdate, policy.ResourceReviews, caller, review.AuthorID) {
		return nil, models.NewPermissionDeniedError("You can only edit your own reviews")
	}

	if in.Text != nil {
		if *in.Text == "" {
			return nil, models.NewFieldValidationError("text", "This field may not be blank")
		}
		review.Text = *in.Text
	}
	if in.Score != nil {
		if err := validation.ValidateScore(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetForTitle(ctx, in.TitleID, in.ReviewID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, caller policy.Caller, titleID, reviewID uint) error {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !policy.AllowObject(policy.VerbDelete, policy.ResourceReviews, caller, review.AuthorID) {
		return models.NewPermissionDeniedError("You can only delete your own reviews")
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
