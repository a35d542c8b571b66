// Command seed populates the database with demo investors, posts, threads and votes.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/emilythestrangee/investor-hub/backend/internal/config"
	"github.com/emilythestrangee/investor-hub/backend/internal/database"
	"github.com/emilythestrangee/investor-hub/backend/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	comments := flag.Int("comments", 8, "Comments per post")
	votes := flag.Int("votes", 15, "Votes cast per user")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	s := seed.NewSeeder(db.GetDB(), *randSeed)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(ctx, seed.Options{
		Users:           *numUsers,
		Posts:           *numPosts,
		CommentsPerPost: *comments,
		VotesPerUser:    *votes,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, %d comments, %d votes\n", res.Users, res.Posts, res.Comments, res.Votes)
	log.Printf("All seeded users have the password: %s\n", seed.DemoPassword)
}
