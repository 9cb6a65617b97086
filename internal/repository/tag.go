package repository

import (
	"context"
	"errors"

	"tagline/internal/cache"
	"tagline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	// FirstOrCreate returns the tag named name, creating it for ownerID if
	// no user has created it yet. created reports which happened.
	FirstOrCreate(ctx context.Context, name string, ownerID uint) (tag *models.Tag, created bool, err error)
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context, limit, offset int) ([]models.Tag, error)
	ListByOwner(ctx context.Context, userID uint) ([]models.Tag, error)
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
	IsUsed(ctx context.Context, id uint) (bool, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FirstOrCreate inserts with ON CONFLICT DO NOTHING so a concurrent creator
// never aborts the surrounding transaction; the loser re-reads the winner.
func (r *tagRepository) FirstOrCreate(ctx context.Context, name string, ownerID uint) (*models.Tag, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	tag := &models.Tag{Name: name}
	if ownerID != 0 {
		owner := ownerID
		tag.UserID = &owner
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(tag)
	if res.Error != nil {
		return nil, false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		return tag, true, nil
	}

	winner, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if winner == nil {
		return nil, false, models.NewInternalError(errors.New("tag vanished after conflicting insert"))
	}
	return winner, false, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := cache.Aside(ctx, cache.TagKey(id), &tag, cache.TagTTL, func() error {
		if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tag", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByName returns (nil, nil) when no tag has the name.
func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).Order("name").Limit(limit).Offset(offset).Find(&tags).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *tagRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&tags).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *tagRepository) Rename(ctx context.Context, id uint, name string) error {
	res := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		if IsUniqueViolation(res.Error) {
			return models.NewConflictError("A tag with this name already exists")
		}
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tag", id)
	}
	cache.Invalidate(ctx, cache.TagKey(id))
	return nil
}

// Delete removes the tag and detaches it from any posts.
func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Tag", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.TagKey(id))
	return nil
}

func (r *tagRepository) IsUsed(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PostTag{}).Where("tag_id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
