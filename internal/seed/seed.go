package seed

import (
	"fmt"
	"log"

	"critica/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configure demo data generation.
type Options struct {
	Users    int
	Titles   int
	Reviews  int
	Comments int
}

// DefaultOptions returns a demo data set small enough for a laptop.
func DefaultOptions() Options {
	return Options{Users: 12, Titles: 30, Reviews: 80, Comments: 120}
}

// DemoCatalog populates the database with a plausible catalog: a few
// categories and genres, titles spread across them, and reviews with
// comment threads. It is a no-op when titles already exist.
func DemoCatalog(db *gorm.DB) error {
	return Seed(db, DefaultOptions())
}

// Seed populates the database with generated data per the options.
func Seed(db *gorm.DB, opts Options) error {
	var existing int64
	if err := db.Model(&models.Title{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to inspect titles: %w", err)
	}
	if existing > 0 {
		log.Printf("seed: %d titles already present, skipping", existing)
		return nil
	}

	f := NewFactory(db)

	categories := make([]*models.Category, 0, 3)
	for _, name := range []string{"Books", "Films", "Music"} {
		c, err := f.CreateCategory(name)
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}
		categories = append(categories, c)
	}

	genreNames := []string{
		"Drama", "Comedy", "Thriller", "Science Fiction",
		"Fantasy", "Detective", "Rock", "Classical",
	}
	genres := make([]models.Genre, 0, len(genreNames))
	for _, name := range genreNames {
		g, err := f.CreateGenre(name)
		if err != nil {
			return fmt.Errorf("failed to create genre %q: %w", name, err)
		}
		genres = append(genres, *g)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, u)
	}

	titles := make([]*models.Title, 0, opts.Titles)
	for i := 0; i < opts.Titles; i++ {
		category := categories[i%len(categories)]
		picked := pickGenres(genres, 1+gofakeit.Number(0, 2))
		t, err := f.CreateTitle(category, picked)
		if err != nil {
			return fmt.Errorf("failed to create title: %w", err)
		}
		titles = append(titles, t)
	}

	// One review per (author, title) pair: walk pairs instead of
	// drawing randomly so the unique index never trips.
	reviews := make([]*models.Review, 0, opts.Reviews)
	for i := 0; i < opts.Reviews; i++ {
		author := users[i%len(users)]
		title := titles[(i/len(users))%len(titles)]
		r, err := f.CreateReview(author, title)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		reviews = append(reviews, r)
	}

	for i := 0; i < opts.Comments; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		review := reviews[gofakeit.Number(0, len(reviews)-1)]
		if _, err := f.CreateComment(author, review); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
	}

	log.Printf("seed: created %d users, %d titles, %d reviews, %d comments",
		len(users), len(titles), len(reviews), opts.Comments)
	return nil
}

func pickGenres(genres []models.Genre, n int) []models.Genre {
	if n >= len(genres) {
		return genres
	}
	start := gofakeit.Number(0, len(genres)-n)
	return genres[start : start+n]
}
