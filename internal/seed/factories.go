// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"critica/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), gofakeit.Number(100, 999)),
		Email:     strings.ToLower(gofakeit.Email()),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(10),
		Role:      models.RoleUser,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category, deriving the slug from the name
// when no override supplies one.
func (f *Factory) CreateCategory(name string, overrides ...func(*models.Category)) (*models.Category, error) {
	category := &models.Category{
		Name: name,
		Slug: slug.Make(name),
	}

	for _, override := range overrides {
		override(category)
	}

	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateGenre persists a genre, deriving the slug from the name when no
// override supplies one.
func (f *Factory) CreateGenre(name string, overrides ...func(*models.Genre)) (*models.Genre, error) {
	genre := &models.Genre{
		Name: name,
		Slug: slug.Make(name),
	}

	for _, override := range overrides {
		override(genre)
	}

	if err := f.db.Create(genre).Error; err != nil {
		return nil, err
	}
	return genre, nil
}

// CreateTitle constructs and persists a sample `models.Title` linked to
// the given category and genres.
func (f *Factory) CreateTitle(category *models.Category, genres []models.Genre, overrides ...func(*models.Title)) (*models.Title, error) {
	title := &models.Title{
		Name:        gofakeit.BookTitle(),
		Year:        gofakeit.Number(1950, time.Now().Year()),
		Description: gofakeit.Sentence(15),
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	for _, override := range overrides {
		override(title)
	}

	if err := f.db.Omit("Genres", "Category").Create(title).Error; err != nil {
		return nil, err
	}
	if len(genres) > 0 {
		if err := f.db.Model(title).Association("Genres").Replace(genres); err != nil {
			return nil, err
		}
	}
	return title, nil
}

// CreateReview persists a review of `title` by `author` with a random
// score. The database enforces one review per author per title, so
// callers must not reuse an (author, title) pair.
func (f *Factory) CreateReview(author *models.User, title *models.Title, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		Text:     gofakeit.Paragraph(1, 3, 8, " "),
		Score:    gofakeit.Number(1, 10),
		AuthorID: author.ID,
		TitleID:  title.ID,
	}

	// realistic pub_date spread
	daysBack := f.rnd.Intn(90)
	hoursBack := f.rnd.Intn(24)
	review.PubDate = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateComment persists a comment on the provided review authored by
// the provided user.
func (f *Factory) CreateComment(author *models.User, review *models.Review, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:     gofakeit.Sentence(12),
		AuthorID: author.ID,
		ReviewID: review.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
