// Command seed migrates the schema and loads the demo dataset. Safe to run
// against a database that is already seeded.
package main

import (
	"log"

	"github.com/quimilab/backend/config"
	"github.com/quimilab/backend/internal/database"
	"github.com/quimilab/backend/internal/models"
	"github.com/quimilab/backend/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	if err := seed.Load(db); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var elements, reactions, molecules int64
	db.Model(&models.Element{}).Count(&elements)
	db.Model(&models.Reaction{}).Count(&reactions)
	db.Model(&models.Molecule{}).Count(&molecules)

	log.Printf("seed complete: %d elements, %d reactions, %d molecules", elements, reactions, molecules)
}
