// Package service holds the domain logic that sits between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"strings"

	"tagline/internal/models"
	"tagline/internal/observability"
	"tagline/internal/repository"
	"tagline/internal/validation"
)

// Sources recorded on the tags-created counter.
const (
	tagSourcePost = "post"
	tagSourceAPI  = "api"
)

// normalizeTagNames trims every name and drops repeats, keeping the order of
// first appearance. Any name that is empty after trimming or too long fails
// the whole request.
func normalizeTagNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if err := validation.ValidateTagName(name); err != nil {
			return nil, models.NewFieldError("tags", err.Error())
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// ResolveTags maps tag names to stored tags. Existing tags are reused no
// matter who created them; unknown names become new tags owned by actorID.
// Callers run it inside the transaction that attaches the tags to a post.
func ResolveTags(ctx context.Context, tags repository.TagRepository, actorID uint, names []string) ([]models.Tag, error) {
	normalized, err := normalizeTagNames(names)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.Tag, 0, len(normalized))
	for _, name := range normalized {
		tag, created, err := tags.FirstOrCreate(ctx, name, actorID)
		if err != nil {
			return nil, err
		}
		if created {
			observability.TagsCreated.WithLabelValues(tagSourcePost).Inc()
		}
		resolved = append(resolved, *tag)
	}
	return resolved, nil
}
