package repository

import (
	"time"

	"gorm.io/gorm"
)

// Post orderings understood by PostFilter.
const (
	OrderDateCreated = "date_created"
	OrderLikesCount  = "likes_count"
)

const likesCountExpr = "(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)"

// PostFilter describes a post query. Every set field narrows the result;
// zero values mean "no constraint".
type PostFilter struct {
	// AllTags requires every listed tag name to be attached to the post.
	AllTags []string
	// TagContains matches posts carrying any tag whose name contains it, case-insensitively.
	TagContains string
	// TextContains matches post text case-insensitively.
	TextContains string

	CreatedGTE *time.Time
	CreatedLTE *time.Time
	// CreatedLT is an exclusive upper bound, used for whole-day filters.
	CreatedLT *time.Time

	LikesExact *int64
	LikesGTE   *int64
	LikesLTE   *int64

	// AuthorID restricts to posts written by one user.
	AuthorID uint
	// FeedOf restricts to posts by accounts that user follows, never their own.
	FeedOf uint
	// LikedBy restricts to posts the user has liked.
	LikedBy uint

	OrderBy string
	Desc    bool

	Limit  int
	Offset int
}

// Apply adds the filter's WHERE, ORDER BY and pagination clauses to db.
// Multi-tag matching uses one IN-subquery per tag so a post never appears twice.
func (f PostFilter) Apply(db *gorm.DB) *gorm.DB {
	for _, name := range f.AllTags {
		db = db.Where("posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE tags.name = ?)", name)
	}
	if f.TagContains != "" {
		db = db.Where(`posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE LOWER(tags.name) LIKE ? ESCAPE '\')`,
			containsPattern(f.TagContains))
	}
	if f.TextContains != "" {
		db = db.Where(`LOWER(posts.text) LIKE ? ESCAPE '\'`, containsPattern(f.TextContains))
	}

	if f.CreatedGTE != nil {
		db = db.Where("posts.created_at >= ?", f.CreatedGTE.UTC())
	}
	if f.CreatedLTE != nil {
		db = db.Where("posts.created_at <= ?", f.CreatedLTE.UTC())
	}
	if f.CreatedLT != nil {
		db = db.Where("posts.created_at < ?", f.CreatedLT.UTC())
	}

	if f.LikesExact != nil {
		db = db.Where(likesCountExpr+" = ?", *f.LikesExact)
	}
	if f.LikesGTE != nil {
		db = db.Where(likesCountExpr+" >= ?", *f.LikesGTE)
	}
	if f.LikesLTE != nil {
		db = db.Where(likesCountExpr+" <= ?", *f.LikesLTE)
	}

	if f.AuthorID != 0 {
		db = db.Where("posts.user_id = ?", f.AuthorID)
	}
	if f.FeedOf != 0 {
		db = db.Where("posts.user_id IN (SELECT follows.following_id FROM follows WHERE follows.follower_id = ?)", f.FeedOf).
			Where("posts.user_id <> ?", f.FeedOf)
	}
	if f.LikedBy != 0 {
		db = db.Where("posts.id IN (SELECT likes.post_id FROM likes WHERE likes.user_id = ?)", f.LikedBy)
	}

	db = f.applyOrder(db)

	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}
	return db
}

// applyOrder sorts by the requested key; posts.id breaks ties so pages are stable.
func (f PostFilter) applyOrder(db *gorm.DB) *gorm.DB {
	dir := " ASC"
	if f.Desc {
		dir = " DESC"
	}
	switch f.OrderBy {
	case OrderLikesCount:
		return db.Order(likesCountExpr + dir).Order("posts.id" + dir)
	default:
		return db.Order("posts.created_at" + dir).Order("posts.id" + dir)
	}
}
