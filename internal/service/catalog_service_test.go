package service

import (
	"context"
	"strings"
	"testing"

	"critica/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("slug derived from name when omitted", func(t *testing.T) {
		t.Parallel()

		repo := noopCategoryRepo()
		var created *models.Category
		repo.createFn = func(_ context.Context, c *models.Category) error {
			created = c
			return nil
		}
		svc := NewCatalogService(repo, noopGenreRepo())

		_, err := svc.CreateCategory(ctx, adminCaller(1), CreateTermInput{Name: "Science Fiction"})
		require.NoError(t, err)
		assert.Equal(t, "science-fiction", created.Slug)
	})

	t.Run("explicit slug wins", func(t *testing.T) {
		t.Parallel()

		repo := noopCategoryRepo()
		var created *models.Category
		repo.createFn = func(_ context.Context, c *models.Category) error {
			created = c
			return nil
		}
		svc := NewCatalogService(repo, noopGenreRepo())

		_, err := svc.CreateCategory(ctx, adminCaller(1), CreateTermInput{Name: "Science Fiction", Slug: "sci-fi"})
		require.NoError(t, err)
		assert.Equal(t, "sci-fi", created.Slug)
	})

	t.Run("invalid slug is rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewCatalogService(noopCategoryRepo(), noopGenreRepo())
		_, err := svc.CreateCategory(ctx, adminCaller(1), CreateTermInput{Name: "Bad", Slug: "Not A Slug!"})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()

		svc := NewCatalogService(noopCategoryRepo(), noopGenreRepo())
		_, err := svc.CreateCategory(ctx, adminCaller(1), CreateTermInput{Name: strings.Repeat("x", 257)})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		t.Parallel()

		svc := NewCatalogService(noopCategoryRepo(), noopGenreRepo())
		_, err := svc.CreateCategory(ctx, userCaller(2), CreateTermInput{Name: "Movies"})
		assertCode(t, err, models.CodePermissionDenied)
	})
}

func TestCatalogService_Genres(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("anonymous can list", func(t *testing.T) {
		t.Parallel()

		repo := noopGenreRepo()
		repo.listFn = func(_ context.Context, search string, _, _ int) ([]models.Genre, int64, error) {
			return []models.Genre{{Name: "Drama", Slug: "drama"}}, 1, nil
		}
		svc := NewCatalogService(noopCategoryRepo(), repo)

		genres, _, err := svc.ListGenres(ctx, "", 10, 0)
		require.NoError(t, err)
		assert.Len(t, genres, 1)
	})

	t.Run("only admin can delete", func(t *testing.T) {
		t.Parallel()

		svc := NewCatalogService(noopCategoryRepo(), noopGenreRepo())
		assert.NoError(t, svc.DeleteGenre(ctx, adminCaller(1), "drama"))
		assertCode(t, svc.DeleteGenre(ctx, moderatorCaller(2), "drama"), models.CodePermissionDenied)
		assertCode(t, svc.DeleteGenre(ctx, anonCaller(), "drama"), models.CodePermissionDenied)
	})
}
