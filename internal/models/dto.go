package models

import "time"

// Placeholder strings used when projecting redacted or anonymized content.
const (
	RedactedBody       = "[REMOVED]"
	UnknownAuthor      = "Unknown"
	OwnPostsAuthor     = "[My Posts]"
	OwnCommentsAuthor  = "[My Comment]"
	DeactivatedDomain  = "deleted.local"
	DeactivatedPattern = "[DELETED_%d_%s]"
)

// PostDTO is the public projection of a post. Body is omitted in list
// responses and "[REMOVED]" for redacted posts.
type PostDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body,omitempty"`
	AuthorUsername string    `json:"author_username"`
	CountryName    string    `json:"country_name"`
	CountryCode    string    `json:"country_code"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	ImageURL       *string   `json:"image_url,omitempty"`
	Score          int       `json:"score"`
	CategoryNames  []string  `json:"category_names"`
	TagNames       []string  `json:"tag_names"`
	CreatedAt      time.Time `json:"created_at"`
}

// CommentDTO is the public projection of a comment, carrying its reply
// subtree for the comment-tree endpoint.
type CommentDTO struct {
	ID              uint          `json:"id"`
	PostID          uint          `json:"post_id"`
	ParentCommentID *uint         `json:"parent_comment_id,omitempty"`
	Body            string        `json:"body"`
	AuthorUsername  string        `json:"author_username"`
	Score           int           `json:"score"`
	CreatedAt       time.Time     `json:"created_at"`
	Replies         []*CommentDTO `json:"replies"`
}

// UserDTO is the owner-facing profile projection.
type UserDTO struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsSubscribed bool      `json:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserDTO projects a user row into its profile view.
func NewUserDTO(u *User) *UserDTO {
	return &UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		IsSubscribed: u.IsSubscribed,
		CreatedAt:    u.CreatedAt,
	}
}
