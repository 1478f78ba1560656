// Command main runs the database seeder for the forum.
package main

import (
	"flag"
	"log"

	"bridgeforum/internal/config"
	"bridgeforum/internal/database"
	"bridgeforum/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	postsPerUser := flag.Int("posts", 3, "Posts per user")
	commentsPerPost := flag.Int("comments", 4, "Maximum comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding (admins are kept)")
	maxDays := flag.Int("days", 90, "Spread post dates over this many days")
	dryRun := flag.Bool("dry-run", false, "Build data without writing to the database")
	flag.Parse()

	_ = godotenv.Load()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts each, clean=%v\n", *numUsers, *postsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	res, err := seed.Seed(db, seed.Options{
		NumUsers:        *numUsers,
		PostsPerUser:    *postsPerUser,
		CommentsPerPost: *commentsPerPost,
		ShouldClean:     *shouldClean,
		MaxDays:         *maxDays,
		DryRun:          *dryRun,
		BatchSize:       100,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d posts, %d comments.", res.Users, res.Posts, res.Comments)
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}
