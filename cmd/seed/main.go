// Command main runs the database seeder for ArtCanvas.
package main

import (
	"flag"
	"log"

	"artcanvas/internal/config"
	"artcanvas/internal/database"
	"artcanvas/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPaintings := flag.Int("paintings", 100, "Number of paintings to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d paintings, clean=%v\n", *numUsers, *numPaintings, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{
		NumUsers:     *numUsers,
		NumPaintings: *numPaintings,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Test users share the password: password123")
}
