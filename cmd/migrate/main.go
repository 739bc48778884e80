// Command migrate applies the schema to the configured database.
package main

import (
	"log"

	"critica/internal/config"
	"critica/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Schema is up to date for %s/%s", cfg.DBHost, cfg.DBName)
}
