package models

import (
	"time"
)

// MaxPostTextLength bounds Post.Text in characters.
const MaxPostTextLength = 255

// Post is a short text entry authored by a user, optionally with an image
// and a set of tags.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Text   string `gorm:"size:255;not null" json:"text"`
	Image  string `gorm:"size:500" json:"image,omitempty"`
	Tags   []Tag  `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`

	// LikesCount is computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// Liked indicates whether the requesting user liked this post (computed)
	Liked bool `gorm:"->;-:migration" json:"liked"`

	CreatedAt time.Time `gorm:"index" json:"date_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagNames returns the names of the post's tags in stored order.
func (p *Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}
