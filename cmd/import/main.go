// Command import loads catalog fixtures from CSV files into the database.
//
// The directory must contain users.csv, category.csv, genre.csv,
// titles.csv, genre_title.csv, review.csv and comments.csv. Existing
// data is replaced.
package main

import (
	"flag"
	"log"

	"critica/internal/config"
	"critica/internal/database"
	"critica/internal/importer"
)

func main() {
	dir := flag.String("dir", "static/data", "Directory containing the CSV fixture files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := importer.New(db).Run(*dir); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Successfully imported fixtures from %s", *dir)
}
