package seed

import (
	"fmt"
	"math/rand"
	"time"

	"tourit/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds demo entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUsers persists n demo users. Every demo user shares the password
// "Password123!abc" so any of them can be used to log in locally.
func (f *Factory) CreateUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!abc"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			IsSubscribed: f.rand.Intn(3) == 0,
			IsActive:     true,
		}
		if err := f.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePosts persists n demo posts spread across the given users with
// random countries, categories, tags and an occasional coordinate pair.
func (f *Factory) CreatePosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	var categories []models.Category
	if err := f.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	var tags []models.Tag
	if err := f.db.Find(&tags).Error; err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		user := users[f.rand.Intn(len(users))]
		body := gofakeit.Paragraph(2, 4, 8, "\n\n")
		post := &models.Post{
			UserID:    &user.ID,
			Title:     gofakeit.Sentence(6),
			Body:      &body,
			CountryID: referenceCountries[f.rand.Intn(len(referenceCountries))].ID,
			CreatedAt: f.pastTimestamp(90),
		}

		if f.rand.Intn(3) == 0 {
			lat := gofakeit.Latitude()
			lng := gofakeit.Longitude()
			post.Latitude = &lat
			post.Longitude = &lng
		}

		post.Categories = pickSome(f.rand, categories, 2)
		post.Tags = pickSome(f.rand, tags, 3)

		if err := f.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateComments persists a few comments per post, with roughly a third
// of them replying to an earlier comment on the same post.
func (f *Factory) CreateComments(users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	if len(users) == 0 {
		return nil, nil
	}

	var comments []*models.Comment
	for _, post := range posts {
		var onPost []*models.Comment
		for i := 0; i < f.rand.Intn(5); i++ {
			user := users[f.rand.Intn(len(users))]
			body := gofakeit.Sentence(12)
			comment := &models.Comment{
				UserID:    &user.ID,
				PostID:    post.ID,
				Body:      &body,
				CreatedAt: f.pastTimestamp(30),
			}
			if len(onPost) > 0 && f.rand.Intn(3) == 0 {
				comment.ParentCommentID = &onPost[f.rand.Intn(len(onPost))].ID
			}
			if err := f.db.Create(comment).Error; err != nil {
				return nil, err
			}
			onPost = append(onPost, comment)
		}
		comments = append(comments, onPost...)
	}
	return comments, nil
}

// CreateVotes casts random up and down votes on posts and comments.
// At most one vote per user per target, matching the unique indexes.
func (f *Factory) CreateVotes(users []*models.User, posts []*models.Post, comments []*models.Comment) error {
	for _, post := range posts {
		for _, user := range users {
			if f.rand.Intn(3) != 0 {
				continue
			}
			vote := &models.Vote{
				UserID:   user.ID,
				PostID:   post.ID,
				VoteType: f.voteType(),
			}
			if err := f.db.Create(vote).Error; err != nil {
				return err
			}
		}
	}
	for _, comment := range comments {
		for _, user := range users {
			if f.rand.Intn(5) != 0 {
				continue
			}
			vote := &models.CommentVote{
				UserID:    user.ID,
				CommentID: comment.ID,
				VoteType:  f.voteType(),
			}
			if err := f.db.Create(vote).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// voteType skews positive so demo scores look like a real forum.
func (f *Factory) voteType() int {
	if f.rand.Intn(4) == 0 {
		return -1
	}
	return 1
}

func (f *Factory) pastTimestamp(maxDays int) time.Time {
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}

func pickSome[T any](r *rand.Rand, pool []T, max int) []T {
	if len(pool) == 0 {
		return nil
	}
	count := 1 + r.Intn(max)
	picked := make([]T, 0, count)
	seen := make(map[int]bool)
	for len(picked) < count && len(seen) < len(pool) {
		idx := r.Intn(len(pool))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, pool[idx])
	}
	return picked
}
