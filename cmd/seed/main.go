// Command seed populates the database with generated demo data.
package main

import (
	"flag"
	"log"

	"critica/internal/config"
	"critica/internal/database"
	"critica/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 12, "Number of users to create")
	numTitles := flag.Int("titles", 30, "Number of titles to create")
	numReviews := flag.Int("reviews", 80, "Number of reviews to create")
	numComments := flag.Int("comments", 120, "Number of comments to create")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d titles, %d reviews, %d comments\n",
		*numUsers, *numTitles, *numReviews, *numComments)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		Users:    *numUsers,
		Titles:   *numTitles,
		Reviews:  *numReviews,
		Comments: *numComments,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. The catalog is populated with demo data.")
}
