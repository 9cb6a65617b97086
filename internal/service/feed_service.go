package service

import (
	"context"

	"tagline/internal/models"
	"tagline/internal/observability"
	"tagline/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type FeedService struct {
	posts repository.PostRepository
}

func NewFeedService(posts repository.PostRepository) *FeedService {
	return &FeedService{posts: posts}
}

// Feed returns posts written by the accounts userID follows, never userID's
// own, narrowed and ordered by filter.
func (s *FeedService) Feed(ctx context.Context, userID uint, filter repository.PostFilter) ([]models.Post, error) {
	filter.FeedOf = userID
	filter.AuthorID = 0

	span, ctx := observability.NewSpan(ctx, "posts.feed",
		attribute.Int64("user.id", int64(userID)),
		attribute.String("filter.order", filter.OrderBy),
	)
	posts, err := s.posts.List(ctx, filter, userID)
	span.AddAttributes(attribute.Int("result.count", len(posts)))
	span.End(err)
	if err != nil {
		return nil, err
	}
	observability.PostQueryResults.WithLabelValues("feed").Observe(float64(len(posts)))
	return posts, nil
}
