// Command main runs the database seeder for Curious Life.
package main

import (
	"flag"
	"log"

	"curiouslife/internal/config"
	"curiouslife/internal/database"
	"curiouslife/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numBlogs := flag.Int("blogs", 100, "Number of blogs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d blogs, clean=%v\n", *numUsers, *numBlogs, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumBlogs:    *numBlogs,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Seeded users share the password: Password123")
}
