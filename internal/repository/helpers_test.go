package repository

import (
	"fmt"
	"testing"
	"time"

	"tagline/internal/database"
	"tagline/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupTestDB returns a migrated in-memory SQLite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "hash", Role: models.RoleUser}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createUsers(t *testing.T, db *gorm.DB, n int) []*models.User {
	t.Helper()
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, createUser(t, db, fmt.Sprintf("user%d@example.com", i)))
	}
	return users
}

func createTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, text string, createdAt time.Time, tags ...models.Tag) *models.Post {
	t.Helper()
	p := &models.Post{UserID: author.ID, Text: text, CreatedAt: createdAt.UTC()}
	require.NoError(t, NewPostRepository(db).Create(t.Context(), withTags(p, tags)))
	return p
}

func withTags(p *models.Post, tags []models.Tag) *models.Post {
	p.Tags = tags
	return p
}

func likePost(t *testing.T, db *gorm.DB, post *models.Post, users ...*models.User) {
	t.Helper()
	for _, u := range users {
		require.NoError(t, db.Create(&models.Like{UserID: u.ID, PostID: post.ID}).Error)
	}
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
