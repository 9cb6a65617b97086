// Package main provides role management utilities for Tagline.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"tagline/internal/cache"
	"tagline/internal/config"
	"tagline/internal/database"
	"tagline/internal/models"
	"tagline/internal/repository"
	"tagline/internal/validation"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin set-role <email> <user|staff|admin>  - Change an account's role")
	fmt.Println("  go run ./cmd/admin list-staff                            - List staff and admins")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Role updates invalidate the cached user the server reads.
	cache.InitRedis(cfg.RedisURL)
	repos := repository.NewRepos(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "set-role":
		if len(os.Args) < 4 {
			usage()
		}
		setRole(ctx, repos, os.Args[2], models.Role(os.Args[3]))
	case "list-staff":
		listStaff(ctx, repos)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func setRole(ctx context.Context, repos *repository.Repos, email string, role models.Role) {
	if !role.Valid() {
		log.Fatalf("Unknown role %q", role)
	}

	user, err := repos.Users.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if user == nil {
		fmt.Printf("User %s not found\n", email)
		os.Exit(1)
	}

	if user.Role == role {
		fmt.Printf("User %s (ID: %d) already has role %s\n", user.Email, user.ID, role)
		return
	}

	user.Role = role
	if err := repos.Users.Update(ctx, user); err != nil {
		log.Fatalf("Failed to update role: %v", err)
	}
	fmt.Printf("Updated %s (ID: %d) to role %s\n", user.Email, user.ID, role)
}

func listStaff(ctx context.Context, repos *repository.Repos) {
	users, err := repos.Users.ListByRoles(ctx, models.RoleStaff, models.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to fetch staff: %v", err)
	}
	if len(users) == 0 {
		fmt.Println("No staff accounts found")
		return
	}
	for _, u := range users {
		fmt.Printf("ID: %d | Email: %s | Role: %s\n", u.ID, u.Email, u.Role)
	}
}
