package service

import (
	"context"

	"tagline/internal/models"
	"tagline/internal/observability"
	"tagline/internal/repository"
)

type LikeService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

func NewLikeService(posts repository.PostRepository, users repository.UserRepository) *LikeService {
	return &LikeService{posts: posts, users: users}
}

func (s *LikeService) requirePost(ctx context.Context, postID uint) error {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

// Like records that userID likes postID. Liking twice is a conflict.
func (s *LikeService) Like(ctx context.Context, userID, postID uint) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	created, err := s.posts.Like(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !created {
		observability.RecordRelationship("like", "duplicate")
		return models.NewConflictError("You have already liked this post")
	}
	observability.RecordRelationship("like", "created")
	return nil
}

// Unlike removes the like if there is one.
func (s *LikeService) Unlike(ctx context.Context, userID, postID uint) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	if err := s.posts.Unlike(ctx, userID, postID); err != nil {
		return err
	}
	observability.RecordRelationship("like", "removed")
	return nil
}

// Likers returns the users who liked postID.
func (s *LikeService) Likers(ctx context.Context, postID uint) ([]models.User, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	ids, err := s.posts.LikerIDs(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.users.ListByIDs(ctx, ids)
}
