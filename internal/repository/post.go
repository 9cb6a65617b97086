package repository

import (
	"context"
	"errors"

	"tagline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, currentUserID uint) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceTags(ctx context.Context, postID uint, tags []models.Tag) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	// Like reports whether a new like edge was created.
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) error
	LikerIDs(ctx context.Context, postID uint) ([]uint, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and links post.Tags, which must already exist.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	tags := post.Tags
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.linkTags(ctx, post.ID, tags); err != nil {
		return err
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.withDetails(r.db.WithContext(ctx), currentUserID).
		Where("posts.id = ?", id).
		Take(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, currentUserID uint) ([]models.Post, error) {
	posts := []models.Post{}
	err := filter.Apply(r.withDetails(r.db.WithContext(ctx), currentUserID)).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// withDetails selects the computed columns and preloads author and tags.
func (r *postRepository) withDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " + likesCountExpr + " AS likes_count"
	if currentUserID != 0 {
		db = db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked", currentUserID)
	} else {
		db = db.Select(selectQuery + ", false AS liked")
	}
	return db.Model(&models.Post{}).
		Preload("User").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("tags.name")
		})
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(post).
		Select("text", "image", "updated_at").
		Updates(post).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ReplaceTags makes tags the post's complete tag set.
func (r *postRepository) ReplaceTags(ctx context.Context, postID uint, tags []models.Tag) error {
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return r.linkTags(ctx, postID, tags)
}

func (r *postRepository) linkTags(ctx context.Context, postID uint, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.PostTag, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, models.PostTag{PostID: postID, TagID: t.ID})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post with its likes and tag links.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
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
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	like := models.Like{UserID: userID, PostID: postID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) LikerIDs(ctx context.Context, postID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Order("created_at, id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
