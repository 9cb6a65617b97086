// Package models defines the persistent entities and API error types.
package models

import (
	"time"
)

// Role is the authorization level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account. Users are identified by email.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Bio            string    `gorm:"size:255" json:"bio"`
	ProfilePicture string    `gorm:"size:500" json:"profile_picture,omitempty"`
	Role           Role      `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsStaff reports whether the user may manage content owned by others.
func (u *User) IsStaff() bool {
	return u.Role.IsStaff()
}

// IsStaff reports whether r grants staff privileges.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Profile is a user together with their follow graph and authored posts.
type Profile struct {
	User
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	Followers      []uint `json:"followers"`
	Following      []uint `json:"following"`
	Posts          []Post `json:"posts"`
}
