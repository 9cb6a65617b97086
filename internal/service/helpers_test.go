package service

import (
	"context"
	"errors"
	"testing"

	"tagline/internal/database"
	"tagline/internal/models"
	"tagline/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupRepos returns repositories over a migrated in-memory SQLite database.
func setupRepos(t *testing.T) (*gorm.DB, *repository.Repos) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, repository.NewRepos(db)
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "not-a-hash", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createPost(t *testing.T, svc *PostService, author *models.User, text string, tags ...string) *models.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: author.ID,
		Text:   text,
		Tags:   tags,
	})
	require.NoError(t, err)
	return post
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

// assertAppError asserts that err is an AppError carrying code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
