// Package importer loads catalog fixtures from CSV files into the
// database. The file set mirrors the layout produced by the catalog
// export: users, category, genre, titles, genre_title, review, comments.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"critica/internal/models"

	"gorm.io/gorm"
)

// files in dependency order: rows reference earlier files by ID.
var files = []string{
	"users",
	"category",
	"genre",
	"titles",
	"genre_title",
	"review",
	"comments",
}

// Importer reads CSV fixtures and persists them with explicit IDs so
// cross-file references survive the import.
type Importer struct {
	db *gorm.DB
}

// New creates an Importer bound to the provided Gorm DB.
func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Run clears the existing data and imports every fixture file found in
// dir. A missing file aborts the run; partially imported data is rolled
// back with the surrounding transaction.
func (imp *Importer) Run(dir string) error {
	return imp.db.Transaction(func(tx *gorm.DB) error {
		if err := clearTables(tx); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}
		for _, name := range files {
			path := filepath.Join(dir, name+".csv")
			if err := importFile(tx, path, name); err != nil {
				return fmt.Errorf("failed to import %s: %w", path, err)
			}
		}
		return nil
	})
}

// clearTables deletes in child-first order so foreign keys never dangle
// mid-run.
func clearTables(tx *gorm.DB) error {
	for _, stmt := range []string{
		"DELETE FROM comments",
		"DELETE FROM reviews",
		"DELETE FROM genre_titles",
		"DELETE FROM titles",
		"DELETE FROM genres",
		"DELETE FROM categories",
		"DELETE FROM users",
	} {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func importFile(tx *gorm.DB, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		line++

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = record[i]
			}
		}
		if err := createRow(tx, name, row); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return nil
}

func createRow(tx *gorm.DB, name string, row map[string]string) error {
	switch name {
	case "users":
		return tx.Create(&models.User{
			ID:        uintField(row, "id"),
			Username:  row["username"],
			Email:     strings.ToLower(row["email"]),
			Role:      models.Role(row["role"]),
			Bio:       row["bio"],
			FirstName: row["first_name"],
			LastName:  row["last_name"],
		}).Error
	case "category":
		return tx.Create(&models.Category{
			ID:   uintField(row, "id"),
			Name: row["name"],
			Slug: row["slug"],
		}).Error
	case "genre":
		return tx.Create(&models.Genre{
			ID:   uintField(row, "id"),
			Name: row["name"],
			Slug: row["slug"],
		}).Error
	case "titles":
		title := models.Title{
			ID:   uintField(row, "id"),
			Name: row["name"],
			Year: intField(row, "year"),
		}
		if c := uintField(row, "category"); c != 0 {
			title.CategoryID = &c
		}
		return tx.Omit("Genres", "Category").Create(&title).Error
	case "genre_title":
		return tx.Exec(
			"INSERT INTO genre_titles (title_id, genre_id) VALUES (?, ?)",
			uintField(row, "title_id"), uintField(row, "genre_id"),
		).Error
	case "review":
		return tx.Create(&models.Review{
			ID:       uintField(row, "id"),
			TitleID:  uintField(row, "title_id"),
			Text:     row["text"],
			AuthorID: uintField(row, "author"),
			Score:    intField(row, "score"),
			PubDate:  timeField(row, "pub_date"),
		}).Error
	case "comments":
		return tx.Create(&models.Comment{
			ID:       uintField(row, "id"),
			ReviewID: uintField(row, "review_id"),
			Text:     row["text"],
			AuthorID: uintField(row, "author"),
			PubDate:  timeField(row, "pub_date"),
		}).Error
	}
	return fmt.Errorf("unknown fixture %q", name)
}

func uintField(row map[string]string, key string) uint {
	v, _ := strconv.ParseUint(strings.TrimSpace(row[key]), 10, 32)
	return uint(v)
}

func intField(row map[string]string, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(row[key]))
	return v
}

func timeField(row map[string]string, key string) time.Time {
	raw := strings.TrimSpace(row[key])
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
