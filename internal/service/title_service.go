package service

import (
	"context"
	"time"

	"critica/internal/models"
	"critica/internal/policy"
	"critica/internal/repository"
)

// TitleService manages the works catalog.
type TitleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository

	// now is swappable in tests for the year upper bound.
	now func() time.Time
}

// TitleInput carries title create/update payloads. Pointer fields
// distinguish "absent" from zero values: on update, absent fields keep
// their current value, and absent or empty Genres keeps the current
// genre links while a non-empty list replaces them wholesale.
type TitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

func NewTitleService(titleRepo repository.TitleRepository, categoryRepo repository.CategoryRepository, genreRepo repository.GenreRepository) *TitleService {
	return &TitleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		now:          time.Now,
	}
}

func (s *TitleService) ListTitles(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, limit, offset)
}

func (s *TitleService) GetTitle(ctx context.Context, id uint) (*models.Title, error) {
	return s.titleRepo.GetByID(ctx, id)
}

func (s *TitleService) CreateTitle(ctx context.Context, caller policy.Caller, in TitleInput) (*models.Title, error) {
	if !policy.Allow(policy.VerbCreate, policy.ResourceTitles, caller) {
		return nil, models.NewPermissionDeniedError("Only administrators can modify the catalog")
	}
	if in.Name == nil || *in.Name == "" {
		return nil, models.NewFieldValidationError("name", "This field is required")
	}
	if len(*in.Name) > 256 {
		return nil, models.NewFieldValidationError("name", "Name must be at most 256 characters")
	}
	if in.Year == nil {
		return nil, models.NewFieldValidationError("year", "This field is required")
	}
	if err := s.validateYear(*in.Year); err != nil {
		return nil, err
	}

	title := &models.Title{Name: *in.Name, Year: *in.Year}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.CategorySlug != nil {
		category, err := s.resolveCategory(ctx, *in.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, in.GenreSlugs)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	if len(genres) > 0 {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.titleRepo.GetByID(ctx, title.ID)
}

func (s *TitleService) UpdateTitle(ctx context.Context, caller policy.Caller, id uint, in TitleInput) (*models.Title, error) {
	if !policy.Allow(policy.VerbUpdate, policy.ResourceTitles, caller) {
		return nil, models.NewPermissionDeniedError("Only administrators can modify the catalog")
	}
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewFieldValidationError("name", "This field may not be blank")
		}
		if len(*in.Name) > 256 {
			return nil, models.NewFieldValidationError("name", "Name must be at most 256 characters")
		}
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := s.validateYear(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.CategorySlug != nil {
		category, err := s.resolveCategory(ctx, *in.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	// An empty genre list keeps the existing links; only a non-empty
	// list replaces them.
	if len(in.GenreSlugs) > 0 {
		genres, err := s.resolveGenres(ctx, in.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.titleRepo.GetByID(ctx, id)
}

func (s *TitleService) DeleteTitle(ctx context.Context, caller policy.Caller, id uint) error {
	if !policy.Allow(policy.VerbDelete, policy.ResourceTitles, caller) {
		return models.NewPermissionDeniedError("Only administrators can modify the catalog")
	}
	return s.titleRepo.Delete(ctx, id)
}

// validateYear enforces the upper bound at write time. Already-stored
// titles are never re-checked, so the bound moving forward each year
// never invalidates old rows.
func (s *TitleService) validateYear(year int) error {
	if year > s.now().Year() {
		return models.NewFieldValidationError("year", "Year cannot be in the future")
	}
	return nil
}

func (s *TitleService) resolveCategory(ctx context.Context, categorySlug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.NewFieldValidationError("category", "Unknown category: "+categorySlug)
	}
	return category, nil
}

// resolveGenres maps slugs to genre rows, rejecting unknown slugs.
func (s *TitleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, wanted := range slugs {
		if !found[wanted] {
			return nil, models.NewFieldValidationError("genre", "Unknown genre: "+wanted)
		}
	}
	return genres, nil
}
