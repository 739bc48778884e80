package service

import (
	"context"

	"critica/internal/models"
	"critica/internal/policy"
	"critica/internal/repository"
	"critica/internal/validation"

	"github.com/gosimple/slug"
)

// CatalogService manages the category and genre reference data. Both
// resources behave identically: world-readable, admin-writable, looked
// up by slug, immutable once created (delete and recreate to change).
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

type CreateTermInput struct {
	Name string
	Slug string
}

func NewCatalogService(categoryRepo repository.CategoryRepository, genreRepo repository.GenreRepository) *CatalogService {
	return &CatalogService{categoryRepo: categoryRepo, genreRepo: genreRepo}
}

// normalizeTerm validates the name and resolves the slug, deriving one
// from the name when the payload omits it.
func normalizeTerm(in CreateTermInput) (CreateTermInput, error) {
	if in.Name == "" {
		return in, models.NewFieldValidationError("name", "This field is required")
	}
	if len(in.Name) > 256 {
		return in, models.NewFieldValidationError("name", "Name must be at most 256 characters")
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return in, err
	}
	return in, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, search, limit, offset)
}

func (s *CatalogService) CreateCategory(ctx context.Context, caller policy.Caller, in CreateTermInput) (*models.Category, error) {
	if !policy.Allow(policy.VerbCreate, policy.ResourceCategories, caller) {
		return nil, models.NewPermissionDeniedError("Only administrators can modify the catalog")
	}
	in, err := normalizeTerm(in)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, caller policy.Caller, slug string) error {
	if !policy.Allow(policy.VerbDelete, policy.ResourceCategories, caller) {
		return models.NewPermissionDeniedError("Only administrators can modify the catalog")
	}
	return s.categoryRepo.DeleteBySlug(ctx, slug)
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	return s.genreRepo.List(ctx, search, limit, offset)
}

func (s *CatalogService) CreateGenre(ctx context.Context, caller policy.Caller, in CreateTermInput) (*models.Genre, error) {
	if !policy.Allow(policy.VerbCreate, policy.ResourceGenres, caller) {
		return nil, models.NewPermissionDeniedError("Only administrators can modify the catalog")
	}
	in, err := normalizeTerm(in)
	if err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *CatalogService) DeleteGenre(ctx context.Context, caller policy.Caller, slug string) error {
	if !policy.Allow(policy.VerbDelete, policy.ResourceGenres, caller) {
		return models.NewPermissionDeniedError("Only administrators can modify the catalog")
	}
	return s.genreRepo.DeleteBySlug(ctx, slug)
}
