package models

import "time"

// Comment is a reply on a post. ParentCommentID points at another comment
// on the same post; a nil parent means a top-level comment.
//
// Redaction mirrors posts: the row stays (IsDeleted set, Body and UserID
// nulled) so reply chains under a removed comment remain attached.
type Comment struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	UserID          *uint     `gorm:"index" json:"user_id,omitempty"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PostID          uint      `gorm:"index;not null" json:"post_id"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id,omitempty"`
	Body            *string   `gorm:"type:text" json:"body,omitempty"`
	IsDeleted       bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt       time.Time `json:"created_at"`

	Replies      []Comment     `gorm:"foreignKey:ParentCommentID" json:"-"`
	CommentVotes []CommentVote `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`

	Score int `gorm:"->" json:"score"`
}

// CommentVote is a single user's up/down vote on a comment.
type CommentVote struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_comment_votes_user_comment;not null" json:"user_id"`
	CommentID uint      `gorm:"uniqueIndex:idx_comment_votes_user_comment;not null" json:"comment_id"`
	VoteType  int       `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
