package seed

import (
	"context"
	"testing"

	"tagline/internal/database"
	"tagline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

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

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeed_Random(t *testing.T) {
	db := setupTestDB(t)
	stats, err := Seed(context.Background(), db, Options{
		NumUsers:    5,
		NumPosts:    12,
		MaxFollows:  3,
		MaxLikes:    4,
		SeedOptions: SeedOptions{SkipBcrypt: true},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), count(t, db, &models.User{}))
	assert.Equal(t, int64(12), count(t, db, &models.Post{}))
	assert.LessOrEqual(t, count(t, db, &models.Tag{}), int64(len(tagPool)))
	assert.Equal(t, Stats{
		Users:   5,
		Follows: int(count(t, db, &models.Follow{})),
		Posts:   12,
		Likes:   int(count(t, db, &models.Like{})),
	}, stats)

	var selfFollows int64
	require.NoError(t, db.Model(&models.Follow{}).Where("follower_id = following_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)

	require.NoError(t, ClearAll(db))
	assert.Zero(t, count(t, db, &models.User{}))
	assert.Zero(t, count(t, db, &models.Post{}))
	assert.Zero(t, count(t, db, &models.Tag{}))
}

func TestPreset_LoadAndApply(t *testing.T) {
	db := setupTestDB(t)
	preset, err := LoadPreset("testdata/small.yml")
	require.NoError(t, err)
	require.Len(t, preset.Users, 3)

	require.NoError(t, ApplyPreset(context.Background(), db, preset, SeedOptions{SkipBcrypt: true}))

	assert.Equal(t, int64(3), count(t, db, &models.User{}))
	assert.Equal(t, int64(3), count(t, db, &models.Post{}))
	assert.Equal(t, int64(2), count(t, db, &models.Tag{}), "golang is shared by two posts")
	assert.Equal(t, int64(3), count(t, db, &models.Follow{}))
	assert.Equal(t, int64(2), count(t, db, &models.Like{}))

	var alice models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&alice).Error)
	assert.Equal(t, models.RoleStaff, alice.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.Password), []byte("alice-password")))
}

func TestParsePreset_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Unknown follow target", "users:\n  - email: a@example.com\n    follows: [b@example.com]\n"},
		{"Unknown author", "users:\n  - email: a@example.com\nposts:\n  - author: z@example.com\n    text: hi\n"},
		{"Bad role", "users:\n  - email: a@example.com\n    role: root\n"},
		{"Duplicate user", "users:\n  - email: a@example.com\n  - email: a@example.com\n"},
		{"Not YAML", "users: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePreset([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestCreateSuperuser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	admin, err := CreateSuperuser(ctx, db, "root@example.com", "super-secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	again, err := CreateSuperuser(ctx, db, "root@example.com", "rotated-secret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, int64(1), count(t, db, &models.User{}))

	var stored models.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("rotated-secret")))

	_, err = CreateSuperuser(ctx, db, "root@example.com", "short")
	assert.Error(t, err)
}

func TestSeed_FollowCountSkipsSelfFollows(t *testing.T) {
	db := setupTestDB(t)
	// With one user every follow candidate is the user itself.
	stats, err := Seed(context.Background(), db, Options{
		NumUsers:    1,
		MaxFollows:  5,
		SeedOptions: SeedOptions{SkipBcrypt: true},
	})
	require.NoError(t, err)
	assert.Zero(t, stats.Follows)
	assert.Zero(t, count(t, db, &models.Follow{}))
}

func TestFactory_FollowReportsCreated(t *testing.T) {
	db := setupTestDB(t)
	f := NewFactory(db, SeedOptions{SkipBcrypt: true})
	ctx := context.Background()

	a, err := f.CreateUser(ctx)
	require.NoError(t, err)
	b, err := f.CreateUser(ctx)
	require.NoError(t, err)

	created, err := f.Follow(ctx, a, a)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = f.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, created)
}
