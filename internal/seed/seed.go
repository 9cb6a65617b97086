package seed

import (
	"context"
	"fmt"
	"log/slog"

	"tagline/internal/middleware"
	"tagline/internal/models"
	"tagline/internal/repository"
	"tagline/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls a random seed run.
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxFollows  int
	MaxLikes    int
	ShouldClean bool
	SeedOptions
}

// tagPool is the vocabulary random posts draw their tags from.
var tagPool = []string{
	"golang", "databases", "devops", "music", "travel", "food", "books", "photography",
	"gaming", "fitness", "design", "security", "opensource", "coffee", "hiking",
}

// Stats counts the rows a seed run created.
type Stats struct {
	Users   int
	Follows int
	Posts   int
	Likes   int
}

// Seed populates the database with random users, follows, posts and likes.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Stats, error) {
	var stats Stats
	log := middleware.Logger
	log.Info("Starting database seeding", slog.Int("users", opts.NumUsers), slog.Int("posts", opts.NumPosts))

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			return stats, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	f := NewFactory(db, opts.SeedOptions)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return stats, fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, u)
	}
	stats.Users = len(users)
	if len(users) == 0 {
		return stats, nil
	}

	for _, u := range users {
		n := 0
		if opts.MaxFollows > 0 {
			n = f.rng.Intn(opts.MaxFollows + 1)
		}
		for _, idx := range f.rng.Perm(len(users))[:min(n, len(users))] {
			created, err := f.Follow(ctx, u, users[idx])
			if err != nil {
				return stats, fmt.Errorf("failed to create follows: %w", err)
			}
			if created {
				stats.Follows++
			}
		}
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		tags := make([]string, 0, 3)
		for _, idx := range f.rng.Perm(len(tagPool))[:f.rng.Intn(4)] {
			tags = append(tags, tagPool[idx])
		}
		post, err := f.CreatePost(ctx, author, tags)
		if err != nil {
			return stats, fmt.Errorf("failed to create posts: %w", err)
		}
		stats.Posts++

		n := 0
		if opts.MaxLikes > 0 {
			n = f.rng.Intn(opts.MaxLikes + 1)
		}
		for _, idx := range f.rng.Perm(len(users))[:min(n, len(users))] {
			if err := f.Like(ctx, users[idx], post); err != nil {
				return stats, fmt.Errorf("failed to create likes: %w", err)
			}
			stats.Likes++
		}
	}

	log.Info("Database seeding completed",
		slog.Int("users", stats.Users),
		slog.Int("follows", stats.Follows),
		slog.Int("posts", stats.Posts),
		slog.Int("likes", stats.Likes),
	)
	return stats, nil
}

// ClearAll deletes every row, children before parents.
func ClearAll(db *gorm.DB) error {
	for _, model := range []any{&models.Like{}, &models.Follow{}, &models.PostTag{}, &models.Post{}, &models.Tag{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateSuperuser creates an admin account, or promotes and re-passwords the
// account if the email is already registered.
func CreateSuperuser(ctx context.Context, db *gorm.DB, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(db)
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{Email: email, Password: string(hashed), Role: models.RoleAdmin}
		if err := users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.Password = string(hashed)
	user.Role = models.RoleAdmin
	if err := users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
