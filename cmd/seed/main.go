// Command main runs the database seeder for Tagline.
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"tagline/internal/cache"
	"tagline/internal/config"
	"tagline/internal/database"
	"tagline/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	maxFollows := flag.Int("follows", 10, "Maximum follows per user")
	maxLikes := flag.Int("likes", 20, "Maximum likes per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Skip bcrypt for seeded passwords (local only)")
	preset := flag.String("preset", "", "Apply a YAML preset file instead of random data")
	admin := flag.String("admin", "", "Create or promote an admin account, as email:password")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Updates to existing accounts must invalidate the server's user cache.
	cache.InitRedis(cfg.RedisURL)
	ctx := context.Background()

	if *admin != "" {
		email, password, ok := strings.Cut(*admin, ":")
		if !ok || password == "" {
			log.Fatalf("-admin expects email:password")
		}
		user, err := seed.CreateSuperuser(ctx, db, email, password)
		if err != nil {
			log.Fatalf("Admin creation failed: %v", err)
		}
		log.Printf("Admin ready: %s (ID: %d)", user.Email, user.ID)
		return
	}

	opts := seed.SeedOptions{SkipBcrypt: *fast}

	if *preset != "" {
		log.Printf("Applying preset: %s", *preset)
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("Preset load failed: %v", err)
		}
		if *shouldClean {
			if err := seed.ClearAll(db); err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
		}
		if err := seed.ApplyPreset(ctx, db, p, opts); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
		log.Println("Preset applied")
		return
	}

	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)
	stats, err := seed.Seed(ctx, db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		MaxFollows:  *maxFollows,
		MaxLikes:    *maxLikes,
		ShouldClean: *shouldClean,
		SeedOptions: opts,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d users, %d follows, %d posts, %d likes", stats.Users, stats.Follows, stats.Posts, stats.Likes)

	log.Printf("Done. Seeded users have the password: %s", seed.DefaultPassword)
}
