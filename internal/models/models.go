package models

import "time"

// User is a registered account. Verified starts false and flips to true
// exactly once, when the email verification link is followed.
type User struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // salt$digest record, opaque to callers
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Verified  bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Post is a board entry. Rows are never removed; Visible flips to false
// instead, and every listing path filters on it. Direct-by-id lookups do not.
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Author    string    `gorm:"index;not null" json:"username"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"content"`
	Views     int       `gorm:"not null;default:0" json:"views"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Visible   bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Comment belongs to a post and optionally to a parent comment on the same
// post, forming a thread. Comments are append-only.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"-"`
	Author    string    `gorm:"not null" json:"userId"`
	Body      string    `gorm:"type:text;not null" json:"content"`
	ParentID  *uint     `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostLike records that a user liked a post. The composite unique index is
// what keeps a like at-most-once per (post, user) even under races.
type PostLike struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	PostID    uint      `gorm:"uniqueIndex:idx_post_like;not null" json:"postId"`
	Username  string    `gorm:"uniqueIndex:idx_post_like;not null" json:"username"`
	CreatedAt time.Time `json:"-"`
}
