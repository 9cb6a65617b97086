package service

import (
	"testing"
	"time"

	"tagline/internal/models"
	"tagline/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePostFilter_Defaults(t *testing.T) {
	f, err := ParsePostFilter(map[string]string{"unknown": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, repository.OrderDateCreated, f.OrderBy)
	assert.True(t, f.Desc)
	assert.Equal(t, DefaultPageSize, f.Limit)
	assert.Zero(t, f.Offset)
	assert.Empty(t, f.AllTags)
	assert.Nil(t, f.CreatedGTE)
	assert.Nil(t, f.LikesExact)
}

func TestParsePostFilter_Tags(t *testing.T) {
	f, err := ParsePostFilter(map[string]string{
		"tags__name":            " tag1 , ,tag2,tag1",
		"tags__name__exact":     "tag3",
		"tags__name__icontains": " Go ",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tag1", "tag2", "tag3"}, f.AllTags)
	assert.Equal(t, "Go", f.TagContains)
}

func TestParsePostFilter_Text(t *testing.T) {
	f, err := ParsePostFilter(map[string]string{"text": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", f.TextContains)

	f, err = ParsePostFilter(map[string]string{"text": "hello", "text__icontains": "world"})
	require.NoError(t, err)
	assert.Equal(t, "world", f.TextContains)
}

func TestParsePostFilter_Dates(t *testing.T) {
	t.Run("Date-only bounds cover whole days", func(t *testing.T) {
		f, err := ParsePostFilter(map[string]string{
			"date_created__gte": "2024-01-10",
			"date_created__lte": "2024-01-15",
		})
		require.NoError(t, err)
		require.NotNil(t, f.CreatedGTE)
		require.NotNil(t, f.CreatedLT)
		assert.Equal(t, day(2024, 1, 10), *f.CreatedGTE)
		assert.Equal(t, day(2024, 1, 16), *f.CreatedLT)
		assert.Nil(t, f.CreatedLTE)
	})

	t.Run("Exact date is one UTC day", func(t *testing.T) {
		f, err := ParsePostFilter(map[string]string{"date_created__exact": "2024-02-29"})
		require.NoError(t, err)
		assert.Equal(t, day(2024, 2, 29), *f.CreatedGTE)
		assert.Equal(t, day(2024, 3, 1), *f.CreatedLT)
	})

	t.Run("RFC3339 values are instants", func(t *testing.T) {
		f, err := ParsePostFilter(map[string]string{
			"date_created__gte": "2024-01-10T08:00:00+02:00",
			"date_created__lte": "2024-01-10T18:30:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC), *f.CreatedGTE)
		assert.Equal(t, time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC), *f.CreatedLTE)
		assert.Nil(t, f.CreatedLT)
	})

	t.Run("Tightest lower bound wins", func(t *testing.T) {
		f, err := ParsePostFilter(map[string]string{
			"date_created__exact": "2024-01-10",
			"date_created__gte":   "2024-01-01",
		})
		require.NoError(t, err)
		assert.Equal(t, day(2024, 1, 10), *f.CreatedGTE)
	})
}

func TestParsePostFilter_Likes(t *testing.T) {
	f, err := ParsePostFilter(map[string]string{
		"likes_count__exact": "5",
		"likes_count__gte":   "1",
		"likes_count__lte":   "10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), *f.LikesExact)
	assert.Equal(t, int64(1), *f.LikesGTE)
	assert.Equal(t, int64(10), *f.LikesLTE)

	f, err = ParsePostFilter(map[string]string{"likes_count": "0"})
	require.NoError(t, err)
	require.NotNil(t, f.LikesExact)
	assert.Zero(t, *f.LikesExact)
}

func TestParsePostFilter_Ordering(t *testing.T) {
	tests := []struct {
		raw   string
		field string
		desc  bool
	}{
		{"date_created", repository.OrderDateCreated, false},
		{"-date_created", repository.OrderDateCreated, true},
		{"likes_count", repository.OrderLikesCount, false},
		{"-likes_count", repository.OrderLikesCount, true},
		{"-likes", repository.OrderLikesCount, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f, err := ParsePostFilter(map[string]string{"ordering": tt.raw})
			require.NoError(t, err)
			assert.Equal(t, tt.field, f.OrderBy)
			assert.Equal(t, tt.desc, f.Desc)
		})
	}
}

func TestParsePostFilter_Pagination(t *testing.T) {
	tests := []struct {
		name   string
		query  map[string]string
		limit  int
		offset int
	}{
		{"Explicit", map[string]string{"limit": "10", "offset": "20"}, 10, 20},
		{"Capped", map[string]string{"limit": "1000"}, MaxPageSize, 0},
		{"Garbage falls back", map[string]string{"limit": "abc", "offset": "-3"}, DefaultPageSize, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParsePostFilter(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.limit, f.Limit)
			assert.Equal(t, tt.offset, f.Offset)
		})
	}
}

func TestParsePostFilter_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
		field string
	}{
		{"Non-numeric likes", map[string]string{"likes_count__exact": "five"}, "likes_count__exact"},
		{"Negative likes", map[string]string{"likes_count__gte": "-1"}, "likes_count__gte"},
		{"Bare likes garbage", map[string]string{"likes_count": "1.5"}, "likes_count"},
		{"Bad date", map[string]string{"date_created__gte": "yesterday"}, "date_created__gte"},
		{"Bad exact date", map[string]string{"date_created__exact": "2024-13-01"}, "date_created__exact"},
		{"Unknown ordering", map[string]string{"ordering": "text"}, "ordering"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePostFilter(tt.query)
			assertAppError(t, err, models.CodeValidation)
			assert.Contains(t, err.(*models.AppError).Fields, tt.field)
		})
	}
}
