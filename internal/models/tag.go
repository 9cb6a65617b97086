package models

import "time"

// MaxTagNameLength bounds Tag.Name in characters.
const MaxTagNameLength = 50

// Tag is a label attached to posts. Names are unique across all users;
// UserID records who created the tag and is cleared if that user is deleted.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// PostTag is the join row between posts and tags.
type PostTag struct {
	PostID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey;index"`
}

// TableName pins the join table shared with Post.Tags.
func (PostTag) TableName() string {
	return "post_tags"
}
