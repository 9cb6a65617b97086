package service

import (
	"context"
	"strings"
	"testing"

	"tagline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagRepoStub is a stub for repository.TagRepository backed by a map.
type tagRepoStub struct {
	byName map[string]*models.Tag
	nextID uint
	calls  []string
}

func newTagRepoStub(existing ...string) *tagRepoStub {
	s := &tagRepoStub{byName: map[string]*models.Tag{}}
	for _, name := range existing {
		s.nextID++
		s.byName[name] = &models.Tag{ID: s.nextID, Name: name}
	}
	return s
}

func (s *tagRepoStub) FirstOrCreate(_ context.Context, name string, ownerID uint) (*models.Tag, bool, error) {
	s.calls = append(s.calls, name)
	if tag, ok := s.byName[name]; ok {
		return tag, false, nil
	}
	s.nextID++
	owner := ownerID
	tag := &models.Tag{ID: s.nextID, Name: name, UserID: &owner}
	s.byName[name] = tag
	return tag, true, nil
}
func (s *tagRepoStub) GetByID(context.Context, uint) (*models.Tag, error) { return nil, nil }
func (s *tagRepoStub) GetByName(_ context.Context, name string) (*models.Tag, error) {
	return s.byName[name], nil
}
func (s *tagRepoStub) List(context.Context, int, int) ([]models.Tag, error) { return nil, nil }
func (s *tagRepoStub) ListByOwner(context.Context, uint) ([]models.Tag, error) { return nil, nil }
func (s *tagRepoStub) Rename(context.Context, uint, string) error { return nil }
func (s *tagRepoStub) Delete(context.Context, uint) error { return nil }
func (s *tagRepoStub) IsUsed(context.Context, uint) (bool, error) { return false, nil }

func TestResolveTags(t *testing.T) {
	t.Run("Trims and collapses duplicates in order", func(t *testing.T) {
		repo := newTagRepoStub()
		tags, err := ResolveTags(context.Background(), repo, 7, []string{" go ", "db", "go", "db "})
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "go", tags[0].Name)
		assert.Equal(t, "db", tags[1].Name)
		assert.Equal(t, []string{"go", "db"}, repo.calls)
		assert.Equal(t, uint(7), *tags[0].UserID)
	})

	t.Run("Reuses tags created by anyone", func(t *testing.T) {
		repo := newTagRepoStub("existing")
		tags, err := ResolveTags(context.Background(), repo, 7, []string{"existing"})
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, uint(1), tags[0].ID)
		assert.Nil(t, tags[0].UserID)
	})

	t.Run("Empty name rejects the request", func(t *testing.T) {
		repo := newTagRepoStub()
		_, err := ResolveTags(context.Background(), repo, 7, []string{"ok", "   "})
		assertAppError(t, err, models.CodeValidation)
		assert.Empty(t, repo.calls, "no tag is created when any name is invalid")
	})

	t.Run("Overlong name rejects the request", func(t *testing.T) {
		repo := newTagRepoStub()
		_, err := ResolveTags(context.Background(), repo, 7, []string{strings.Repeat("x", models.MaxTagNameLength+1)})
		assertAppError(t, err, models.CodeValidation)
	})

	t.Run("No names", func(t *testing.T) {
		tags, err := ResolveTags(context.Background(), newTagRepoStub(), 7, nil)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}
