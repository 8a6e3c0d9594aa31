package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"movie-review/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var commentColumns = []string{
	"id", "content", "date", "created_at", "updated_at",
	"user_id", "username", "email",
	"movie_id", "title", "description", "image", "watch_link", "stars",
	"movie_date", "movie_created_at", "movie_updated_at",
	"movie_user_id", "movie_username", "movie_email",
}

func commentRow(rows *pgxmock.Rows, id, movieID int64, content string, date time.Time) *pgxmock.Rows {
	return rows.AddRow(id, content, date, date, date,
		int64(2), "bob", "bob@example.com",
		movieID, "Dune", "Spice", "dune.jpg", "https://watch.example/dune", intPtr(4),
		date, date, date,
		int64(9), "alice", "alice@example.com")
}

func TestCommentRepository_FindByID(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(commentRow(pgxmock.NewRows(commentColumns), 7, 3, "Loved it", date))

	comment, err := repo.FindByID(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, "Loved it", comment.Content)
	assert.Equal(t, int64(2), comment.UserID())
	assert.Equal(t, int64(3), comment.MovieID())
	require.NotNil(t, comment.Movie())
	assert.True(t, comment.Movie().HasComment(comment))
	assert.Equal(t, int64(9), comment.Movie().UserID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_FindByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(commentColumns))

	comment, err := repo.FindByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Nil(t, comment)
}

func TestCommentRepository_FindByMovieID(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(commentColumns)
	commentRow(rows, 1, 3, "first", date)
	commentRow(rows, 2, 3, "second", date)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.movie_id = $1 ORDER BY c.id LIMIT $2 OFFSET $3")).
		WithArgs(int64(3), 20, 0).
		WillReturnRows(rows)

	comments, err := repo.FindByMovieID(context.Background(), 3, 20, 0)

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_LoadForMovies(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	dune := &entity.Movie{Base: entity.Base{ID: 3}}
	alien := &entity.Movie{Base: entity.Base{ID: 4}}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.movie_id = ANY($1)")).
		WithArgs([]int64{3, 4}).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "content", "date", "created_at", "updated_at", "movie_id", "user_id", "username", "email",
		}).
			AddRow(int64(1), "spice", date, date, date, int64(3), int64(2), "bob", "bob@example.com").
			AddRow(int64(2), "scary", date, date, date, int64(4), int64(2), "bob", "bob@example.com").
			AddRow(int64(3), "worms", date, date, date, int64(3), int64(5), "carol", "carol@example.com"))

	err := repo.LoadForMovies(context.Background(), []*entity.Movie{dune, alien, dune})

	require.NoError(t, err)
	require.Len(t, dune.Comments(), 2)
	require.Len(t, alien.Comments(), 1)
	assert.Equal(t, "spice", dune.Comments()[0].Content)
	assert.Equal(t, "worms", dune.Comments()[1].Content)
	assert.Same(t, alien, alien.Comments()[0].Movie())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_LoadForNoMovies(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())

	assert.NoError(t, repo.LoadForMovies(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_CreateUnknownMovie(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	comment := &entity.Comment{Content: "hello", Date: date, User: &entity.User{Base: entity.Base{ID: 2}}}
	(&entity.Movie{Base: entity.Base{ID: 99}}).AddComment(comment)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).
		WithArgs(int64(2), int64(99), "hello", date).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), comment)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	comment := &entity.Comment{Base: entity.Base{ID: 7}, Content: "edited", Date: date, User: &entity.User{Base: entity.Base{ID: 2}}}
	(&entity.Movie{Base: entity.Base{ID: 4}}).AddComment(comment)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE comments")).
		WithArgs(int64(7), int64(2), int64(4), "edited", date).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	err := repo.Update(context.Background(), comment)

	require.NoError(t, err)
	assert.Equal(t, now, comment.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
