package service

import (
	"context"
	"strings"

	"tagline/internal/models"
	"tagline/internal/observability"
	"tagline/internal/repository"
	"tagline/internal/validation"
)

type TagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

func cleanTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateTagName(name); err != nil {
		return "", models.NewFieldError("name", err.Error())
	}
	return name, nil
}

func (s *TagService) ListTags(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	return s.tags.List(ctx, limit, offset)
}

// CreateTag returns the tag called name, creating it for userID when it does
// not exist yet. created tells the two cases apart.
func (s *TagService) CreateTag(ctx context.Context, userID uint, name string) (*models.Tag, bool, error) {
	name, err := cleanTagName(name)
	if err != nil {
		return nil, false, err
	}
	tag, created, err := s.tags.FirstOrCreate(ctx, name, userID)
	if err != nil {
		return nil, false, err
	}
	if created {
		observability.TagsCreated.WithLabelValues(tagSourceAPI).Inc()
	}
	return tag, created, nil
}

func (s *TagService) OwnTags(ctx context.Context, userID uint) ([]models.Tag, error) {
	return s.tags.ListByOwner(ctx, userID)
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

// RenameTag is a staff operation; callers enforce the role.
func (s *TagService) RenameTag(ctx context.Context, id uint, name string) (*models.Tag, error) {
	name, err := cleanTagName(name)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	return s.tags.GetByID(ctx, id)
}

// DeleteTag is a staff operation; callers enforce the role.
func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	return s.tags.Delete(ctx, id)
}

// DeleteUnusedTag lets a user remove a tag they created that no post carries.
func (s *TagService) DeleteUnusedTag(ctx context.Context, userID, id uint) error {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return err
	}
	used, err := s.tags.IsUsed(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return models.NewValidationError("Cannot delete tag with associated posts")
	}
	if tag.UserID == nil || *tag.UserID != userID {
		return models.NewValidationError("Cannot delete another user's tag")
	}
	return s.tags.Delete(ctx, id)
}
