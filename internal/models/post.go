package models

import "time"

// Post is a user submission tied to a country, with optional categories,
// tags, coordinates and an image.
//
// Redaction ("deletion") keeps the row: IsDeleted is set and Body, UserID,
// ImageURL and the coordinates are nulled so votes and the comment thread
// survive without exposing the author's content.
//
// Score is never persisted. It is populated by a SUM subquery at read time
// (gorm:"->" marks the column read-only so writes never touch it).
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title     string    `gorm:"size:300;not null" json:"title"`
	Body      *string   `gorm:"type:text" json:"body,omitempty"`
	CountryID uint      `gorm:"index;not null" json:"country_id"`
	Country   *Country  `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	ImageURL  *string   `gorm:"size:500" json:"image_url,omitempty"`
	IsDeleted bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`

	Categories []Category `gorm:"many2many:post_categories" json:"categories,omitempty"`
	Tags       []Tag      `gorm:"many2many:post_tags" json:"tags,omitempty"`
	Votes      []Vote     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Comments   []Comment  `gorm:"foreignKey:PostID" json:"-"`

	Score int `gorm:"->" json:"score"`
}

// Vote is a single user's up/down vote on a post.
// VoteType is +1 or -1; the unique index makes the toggle idempotent
// under concurrent requests.
type Vote struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_votes_user_post;not null" json:"user_id"`
	PostID    uint      `gorm:"uniqueIndex:idx_votes_user_post;not null" json:"post_id"`
	VoteType  int       `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
