package repository

import (
	"context"
	"testing"

	"tourit/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepositoryExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(ctx, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err = repo.Exists(ctx, 404)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostRepositoryScore(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(vote_type\), 0\) FROM "votes" WHERE post_id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(-2))

	score, err := repo.Score(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, -2, score)
}

func TestPostRepositoryToggleVote(t *testing.T) {
	ctx := context.Background()

	t.Run("Vote on missing post rolls back with not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "votes" WHERE post_id = \$1 AND user_id = \$2 .* FOR UPDATE`).
			WithArgs(404, 7, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
			WithArgs(404).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		_, err := repo.ToggleVote(ctx, 7, 404, 1)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("First vote creates and recomputes score", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "votes" WHERE post_id = \$1 AND user_id = \$2 .* FOR UPDATE`).
			WithArgs(42, 7, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "votes"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(vote_type\), 0\) FROM "votes" WHERE post_id = \$1`).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1))
		mock.ExpectCommit()

		score, err := repo.ToggleVote(ctx, 7, 42, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, score)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
