package service

import (
	"context"
	"testing"

	"critica/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_CreateReview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("authenticated user creates a review", func(t *testing.T) {
		t.Parallel()

		reviewRepo := noopReviewRepo()
		var created *models.Review
		reviewRepo.createFn = func(_ context.Context, r *models.Review) error {
			r.ID = 10
			created = r
			return nil
		}
		svc := NewReviewService(reviewRepo, noopTitleRepo())

		_, err := svc.CreateReview(ctx, userCaller(3), CreateReviewInput{TitleID: 1, Text: "masterpiece", Score: 10})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(3), created.AuthorID)
		assert.Equal(t, uint(1), created.TitleID)
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewReviewService(noopReviewRepo(), noopTitleRepo())
		_, err := svc.CreateReview(ctx, anonCaller(), CreateReviewInput{TitleID: 1, Text: "x", Score: 5})
		assertCode(t, err, models.CodeUnauthenticated)
	})

	t.Run("missing title is not found", func(t *testing.T) {
		t.Parallel()

		titleRepo := noopTitleRepo()
		titleRepo.getByIDFn = func(_ context.Context, id uint) (*models.Title, error) {
			return nil, models.NewNotFoundError("Title", id)
		}
		svc := NewReviewService(noopReviewRepo(), titleRepo)

		_, err := svc.CreateReview(ctx, userCaller(3), CreateReviewInput{TitleID: 99, Text: "x", Score: 5})
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("score out of range", func(t *testing.T) {
		t.Parallel()

		svc := NewReviewService(noopReviewRepo(), noopTitleRepo())
		for _, score := range []int{0, 11, -1} {
			_, err := svc.CreateReview(ctx, userCaller(3), CreateReviewInput{TitleID: 1, Text: "x", Score: score})
			assertCode(t, err, models.CodeValidation)
		}
	})

	t.Run("duplicate review surfaces as validation error", func(t *testing.T) {
		t.Parallel()

		reviewRepo := noopReviewRepo()
		reviewRepo.createFn = func(_ context.Context, _ *models.Review) error {
			return models.NewValidationError("You have already reviewed this title")
		}
		svc := NewReviewService(reviewRepo, noopTitleRepo())

		_, err := svc.CreateReview(ctx, userCaller(3), CreateReviewInput{TitleID: 1, Text: "again", Score: 5})
		assertCode(t, err, models.CodeValidation)
	})
}

func TestReviewService_ObjectPermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newService := func() *ReviewService {
		reviewRepo := noopReviewRepo()
		reviewRepo.getForTitleFn = func(_ context.Context, titleID, reviewID uint) (*models.Review, error) {
			return &models.Review{ID: reviewID, TitleID: titleID, AuthorID: 3, Text: "original", Score: 5}, nil
		}
		return NewReviewService(reviewRepo, noopTitleRepo())
	}

	t.Run("author can edit", func(t *testing.T) {
		t.Parallel()
		_, err := newService().UpdateReview(ctx, userCaller(3), UpdateReviewInput{TitleID: 1, ReviewID: 2, Text: strPtr("edited")})
		assert.NoError(t, err)
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		t.Parallel()
		_, err := newService().UpdateReview(ctx, userCaller(4), UpdateReviewInput{TitleID: 1, ReviewID: 2, Text: strPtr("hijack")})
		assertCode(t, err, models.CodePermissionDenied)
	})

	t.Run("moderator can delete someone else's review", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, newService().DeleteReview(ctx, moderatorCaller(5), 1, 2))
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		t.Parallel()
		assertCode(t, newService().DeleteReview(ctx, userCaller(4), 1, 2), models.CodePermissionDenied)
	})
}

func TestCommentService_ParentChain(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("review under another title is not found", func(t *testing.T) {
		t.Parallel()

		reviewRepo := noopReviewRepo()
		reviewRepo.getForTitleFn = func(_ context.Context, _, reviewID uint) (*models.Review, error) {
			return nil, models.NewNotFoundError("Review", reviewID)
		}
		svc := NewCommentService(noopCommentRepo(), reviewRepo, noopTitleRepo())

		_, err := svc.CreateComment(ctx, userCaller(3), CreateCommentInput{TitleID: 1, ReviewID: 5, Text: "hello"})
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("author or staff can delete, others cannot", func(t *testing.T) {
		t.Parallel()

		commentRepo := noopCommentRepo()
		commentRepo.getForReviewFn = func(_ context.Context, reviewID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, ReviewID: reviewID, AuthorID: 3}, nil
		}
		svc := NewCommentService(commentRepo, noopReviewRepo(), noopTitleRepo())

		assert.NoError(t, svc.DeleteComment(ctx, userCaller(3), 1, 2, 7))
		assert.NoError(t, svc.DeleteComment(ctx, moderatorCaller(5), 1, 2, 7))
		assertCode(t, svc.DeleteComment(ctx, userCaller(4), 1, 2, 7), models.CodePermissionDenied)
	})
}
