package seed

import (
	"context"
	"fmt"
	"os"

	"tagline/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Preset is a hand-written data set, usually loaded from YAML:
//
//	users:
//	  - email: alice@example.com
//	    role: staff
//	    follows: [bob@example.com]
//	  - email: bob@example.com
//	posts:
//	  - author: alice@example.com
//	    text: hello
//	    tags: [golang]
//	    liked_by: [bob@example.com]
type Preset struct {
	Users []PresetUser `yaml:"users"`
	Posts []PresetPost `yaml:"posts"`
}

type PresetUser struct {
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Role     string   `yaml:"role"`
	Bio      string   `yaml:"bio"`
	Follows  []string `yaml:"follows"`
}

type PresetPost struct {
	Author  string   `yaml:"author"`
	Text    string   `yaml:"text"`
	Image   string   `yaml:"image"`
	Tags    []string `yaml:"tags"`
	LikedBy []string `yaml:"liked_by"`
}

// ParsePreset decodes and checks a YAML preset.
func ParsePreset(raw []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPreset reads a preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	return ParsePreset(raw)
}

func (p *Preset) validate() error {
	known := make(map[string]bool, len(p.Users))
	for _, u := range p.Users {
		if u.Email == "" {
			return fmt.Errorf("preset user without email")
		}
		if known[u.Email] {
			return fmt.Errorf("preset user %s listed twice", u.Email)
		}
		if u.Role != "" && !models.Role(u.Role).Valid() {
			return fmt.Errorf("preset user %s has unknown role %q", u.Email, u.Role)
		}
		known[u.Email] = true
	}
	ref := func(email, what string) error {
		if !known[email] {
			return fmt.Errorf("%s refers to unknown user %s", what, email)
		}
		return nil
	}
	for _, u := range p.Users {
		for _, target := range u.Follows {
			if err := ref(target, "follows of "+u.Email); err != nil {
				return err
			}
		}
	}
	for i, post := range p.Posts {
		if err := ref(post.Author, fmt.Sprintf("post %d author", i)); err != nil {
			return err
		}
		for _, liker := range post.LikedBy {
			if err := ref(liker, fmt.Sprintf("post %d liked_by", i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyPreset writes the preset's users, follows, posts and likes.
func ApplyPreset(ctx context.Context, db *gorm.DB, p *Preset, opts SeedOptions) error {
	f := NewFactory(db, opts)

	users := make(map[string]*models.User, len(p.Users))
	for _, pu := range p.Users {
		var hash string
		if pu.Password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(pu.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", pu.Email, err)
			}
			hash = string(hashed)
		}
		u, err := f.CreateUser(ctx, func(u *models.User) {
			u.Email = pu.Email
			u.Bio = pu.Bio
			if pu.Role != "" {
				u.Role = models.Role(pu.Role)
			}
			if hash != "" {
				u.Password = hash
			}
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", pu.Email, err)
		}
		users[pu.Email] = u
	}

	for _, pu := range p.Users {
		for _, target := range pu.Follows {
			if _, err := f.Follow(ctx, users[pu.Email], users[target]); err != nil {
				return fmt.Errorf("follow %s -> %s: %w", pu.Email, target, err)
			}
		}
	}

	for i, pp := range p.Posts {
		post, err := f.CreatePost(ctx, users[pp.Author], pp.Tags, func(post *models.Post) {
			if pp.Text != "" {
				post.Text = pp.Text
			}
			post.Image = pp.Image
		})
		if err != nil {
			return fmt.Errorf("create post %d: %w", i, err)
		}
		for _, liker := range pp.LikedBy {
			if err := f.Like(ctx, users[liker], post); err != nil {
				return fmt.Errorf("like post %d: %w", i, err)
			}
		}
	}
	return nil
}
