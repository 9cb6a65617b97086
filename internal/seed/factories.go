// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tagline/internal/models"
	"tagline/internal/repository"
	"tagline/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every generated account.
const DefaultPassword = "password123"

// SeedOptions tunes generated data.
type SeedOptions struct {
	// SkipBcrypt stores DefaultPassword unhashed; generated accounts then
	// cannot log in, but seeding is much faster.
	SkipBcrypt bool
	// MaxDays bounds how far back post timestamps are spread.
	MaxDays int
}

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	db    *gorm.DB
	repos *repository.Repos
	opts  SeedOptions
	rng   *rand.Rand
	hash  string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:    db,
		repos: repository.NewRepos(db),
		opts:  opts,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// passwordHash hashes DefaultPassword once per factory.
func (f *Factory) passwordHash() (string, error) {
	if f.opts.SkipBcrypt {
		return DefaultPassword, nil
	}
	if f.hash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		f.hash = string(hashed)
	}
	return f.hash, nil
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := f.passwordHash()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:          fmt.Sprintf("%s.%d@%s", gofakeit.Username(), gofakeit.Number(1000, 9999), gofakeit.DomainName()),
		Password:       hash,
		Bio:            truncate(gofakeit.Sentence(10), 255),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:           models.RoleUser,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post for user carrying the named tags, reusing
// existing tags the same way the API does.
func (f *Factory) CreatePost(ctx context.Context, user *models.User, tags []string, overrides ...func(*models.Post)) (*models.Post, error) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays*24*60)) * time.Minute

	post := &models.Post{
		UserID:    user.ID,
		Text:      truncate(gofakeit.Sentence(12), models.MaxPostTextLength),
		CreatedAt: time.Now().UTC().Add(-back),
	}
	if f.rng.Intn(3) == 0 {
		post.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	for _, override := range overrides {
		override(post)
	}

	err := f.repos.Transaction(ctx, func(tx *repository.Repos) error {
		resolved, err := service.ResolveTags(ctx, tx.Tags, user.ID, tags)
		if err != nil {
			return err
		}
		post.Tags = resolved
		return tx.Posts.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Like makes user like post; repeats are ignored.
func (f *Factory) Like(ctx context.Context, user *models.User, post *models.Post) error {
	_, err := f.repos.Posts.Like(ctx, user.ID, post.ID)
	return err
}

// Follow makes follower follow target and reports whether a new edge was
// stored. Self-follows and existing edges report false.
func (f *Factory) Follow(ctx context.Context, follower, target *models.User) (bool, error) {
	if follower.ID == target.ID {
		return false, nil
	}
	return f.repos.Follows.Follow(ctx, follower.ID, target.ID)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
