package service

import (
	"context"

	"tagline/internal/models"
	"tagline/internal/observability"
	"tagline/internal/repository"
)

type FollowService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

func NewFollowService(users repository.UserRepository, follows repository.FollowRepository) *FollowService {
	return &FollowService{users: users, follows: follows}
}

func (s *FollowService) requireUser(ctx context.Context, userID uint) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

// Follow makes actorID follow targetID and returns the target. Following an
// account that is already followed succeeds without adding an edge.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	if actorID == targetID {
		return nil, models.NewFieldError("user_id", "You cannot follow yourself")
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	created, err := s.follows.Follow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	outcome := "created"
	if !created {
		outcome = "existing"
	}
	observability.RecordRelationship("follow", outcome)
	return target, nil
}

// Unfollow removes the follow edge. Unfollowing an account that is not
// followed is a conflict.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	removed, err := s.follows.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if !removed {
		observability.RecordRelationship("unfollow", "not_following")
		return nil, models.NewConflictError("You are not following this user")
	}
	observability.RecordRelationship("unfollow", "removed")
	return target, nil
}

// Followers lists the accounts following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.follows.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.users.ListByIDs(ctx, ids)
}

// Following lists the accounts userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.users.ListByIDs(ctx, ids)
}
