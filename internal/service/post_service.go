package service

import (
	"context"
	"strings"

	"tagline/internal/models"
	"tagline/internal/observability"
	"tagline/internal/repository"
	"tagline/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type PostService struct {
	repos *repository.Repos
}

type CreatePostInput struct {
	UserID uint
	Text   string
	Image  string
	Tags   []string
}

// UpdatePostInput carries a partial update; nil fields are left unchanged.
// A non-nil Tags replaces the whole tag set.
type UpdatePostInput struct {
	UserID uint
	PostID uint
	Text   *string
	Image  *string
	Tags   *[]string
}

func NewPostService(repos *repository.Repos) *PostService {
	return &PostService{repos: repos}
}

func validatePostFields(text, image string) error {
	if err := validation.ValidatePostText(text); err != nil {
		return models.NewFieldError("text", err.Error())
	}
	if err := validation.ValidateImageURL(image); err != nil {
		return models.NewFieldError("image", "image "+err.Error())
	}
	return nil
}

// CreatePost stores a post owned by in.UserID. The post, any new tags and the
// tag links are written in one transaction.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.Image = strings.TrimSpace(in.Image)
	if err := validatePostFields(in.Text, in.Image); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: in.UserID,
		Text:   in.Text,
		Image:  in.Image,
	}
	err := s.repos.Transaction(ctx, func(tx *repository.Repos) error {
		tags, err := ResolveTags(ctx, tx.Tags, in.UserID, in.Tags)
		if err != nil {
			return err
		}
		post.Tags = tags
		return tx.Posts.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	return s.repos.Posts.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	return s.repos.Posts.GetByID(ctx, postID, currentUserID)
}

// ListPosts returns the posts matching filter with likes computed for currentUserID.
func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter, currentUserID uint) ([]models.Post, error) {
	return s.list(ctx, "list", filter, currentUserID)
}

// LikedPosts lists the posts userID has liked.
func (s *PostService) LikedPosts(ctx context.Context, userID uint, filter repository.PostFilter) ([]models.Post, error) {
	filter.LikedBy = userID
	return s.list(ctx, "liked", filter, userID)
}

func (s *PostService) list(ctx context.Context, query string, filter repository.PostFilter, currentUserID uint) ([]models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "posts."+query,
		attribute.Int("filter.tags", len(filter.AllTags)),
		attribute.String("filter.order", filter.OrderBy),
		attribute.Int("filter.limit", filter.Limit),
	)
	posts, err := s.repos.Posts.List(ctx, filter, currentUserID)
	span.AddAttributes(attribute.Int("result.count", len(posts)))
	span.End(err)
	if err != nil {
		return nil, err
	}
	observability.PostQueryResults.WithLabelValues(query).Observe(float64(len(posts)))
	return posts, nil
}

// UpdatePost applies in to a post the actor owns or, for staff, any post.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	err := s.repos.Transaction(ctx, func(tx *repository.Repos) error {
		post, err := tx.Posts.GetByID(ctx, in.PostID, in.UserID)
		if err != nil {
			return err
		}
		if err := authorizeOwner(ctx, tx.Users, in.UserID, post.UserID, "post"); err != nil {
			return err
		}

		if in.Text != nil {
			post.Text = *in.Text
		}
		if in.Image != nil {
			post.Image = strings.TrimSpace(*in.Image)
		}
		if err := validatePostFields(post.Text, post.Image); err != nil {
			return err
		}
		if err := tx.Posts.Update(ctx, post); err != nil {
			return err
		}

		if in.Tags == nil {
			return nil
		}
		tags, err := ResolveTags(ctx, tx.Tags, in.UserID, *in.Tags)
		if err != nil {
			return err
		}
		return tx.Posts.ReplaceTags(ctx, post.ID, tags)
	})
	if err != nil {
		return nil, err
	}

	return s.repos.Posts.GetByID(ctx, in.PostID, in.UserID)
}

// DeletePost removes a post with its likes and tag links.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.repos.Posts.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(ctx, s.repos.Users, userID, post.UserID, "post"); err != nil {
		return err
	}
	return s.repos.Posts.Delete(ctx, postID)
}

// authorizeOwner allows the owner of a resource and staff accounts.
func authorizeOwner(ctx context.Context, users repository.UserRepository, actorID, ownerID uint, resource string) error {
	if actorID == ownerID {
		return nil
	}
	role, err := users.GetRole(ctx, actorID)
	if err != nil {
		return err
	}
	if role.IsStaff() {
		return nil
	}
	return models.NewForbiddenError("You can only modify your own " + resource)
}
