// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories so services can run several of them in
// one transaction.
type Repos struct {
	Users   UserRepository
	Posts   PostRepository
	Tags    TagRepository
	Follows FollowRepository

	db *gorm.DB
}

// NewRepos builds every repository on top of db.
func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Users:   NewUserRepository(db),
		Posts:   NewPostRepository(db),
		Tags:    NewTagRepository(db),
		Follows: NewFollowRepository(db),
		db:      db,
	}
}

// Transaction runs fn with repositories bound to a single database
// transaction. An error returned by fn rolls the transaction back and is
// returned unchanged. Bundles built without a database (stubs in tests) run
// fn directly.
func (r *Repos) Transaction(ctx context.Context, fn func(tx *Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}
