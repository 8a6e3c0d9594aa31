package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieService_CreateMovie(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")

	view, err := f.svc.Movie.CreateMovie(context.Background(), movieRequest("Inception", userID, day(0)))

	require.NoError(t, err)
	movie := asMap(t, view)
	assert.ElementsMatch(t,
		[]string{"id", "title", "description", "image", "watchLink", "stars", "comments", "date", "user"},
		keys(movie))
	assert.NotZero(t, movie["id"])
	assert.Equal(t, "Inception", movie["title"])
	assert.Equal(t, []any{}, movie["comments"])

	user := asMap(t, movie["user"])
	assert.ElementsMatch(t, []string{"id", "username"}, keys(user))
	assert.Equal(t, "alice", user["username"])

	assert.Equal(t, []string{queue.UserCreated, queue.MovieCreated}, f.events.Names())
}

func TestMovieService_CreateMovieValidation(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")

	tests := []struct {
		name    string
		mutate  func(*request.MovieRequest)
		field   string
		message string
	}{
		{
			name:    "short title",
			mutate:  func(r *request.MovieRequest) { r.Title = "AB" },
			field:   "title",
			message: "The title must be at least 3 characters long",
		},
		{
			name:    "blank title",
			mutate:  func(r *request.MovieRequest) { r.Title = "   " },
			field:   "title",
			message: "The title cannot be blank",
		},
		{
			name:    "long title",
			mutate:  func(r *request.MovieRequest) { r.Title = strings.Repeat("a", 51) },
			field:   "title",
			message: "The title cannot be longer than 50 characters",
		},
		{
			name:    "short watch link",
			mutate:  func(r *request.MovieRequest) { r.WatchLink = "http://x" },
			field:   "watchLink",
			message: "The watch link must be at least 10 characters long",
		},
		{
			name:    "missing date",
			mutate:  func(r *request.MovieRequest) { r.Date = nil },
			field:   "date",
			message: "The date is required",
		},
		{
			name:    "missing user",
			mutate:  func(r *request.MovieRequest) { r.User = 0 },
			field:   "user",
			message: "A movie must belong to a user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := movieRequest("Inception", userID, day(0))
			tt.mutate(req)

			_, err := f.svc.Movie.CreateMovie(context.Background(), req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Fields[tt.field])
		})
	}

	total, err := f.store.Repository().Movie.CountAll(context.Background(), repository.MovieFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMovieService_CreateMovieUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Movie.CreateMovie(context.Background(), movieRequest("Inception", 99, day(0)))

	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestMovieService_GetMoviesPaginates(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")
	for i := 0; i < 25; i++ {
		f.movie(t, title(i), userID, day(i))
	}

	first, err := f.svc.Movie.GetMovies(context.Background(), repository.MovieFilter{}, &request.PaginatedRequest{Page: 1, PerPage: 20})
	require.NoError(t, err)
	second, err := f.svc.Movie.GetMovies(context.Background(), repository.MovieFilter{}, &request.PaginatedRequest{Page: 2, PerPage: 20})
	require.NoError(t, err)

	assert.Len(t, first.Data, 20)
	assert.Len(t, second.Data, 5)
	assert.Equal(t, int64(25), first.Pagination.Total)
	assert.Equal(t, 2, first.Pagination.TotalPages)
	assert.Equal(t, title(24), asMap(t, first.Data[0])["title"])
	assert.Equal(t, title(0), asMap(t, second.Data[4])["title"])
}

func TestMovieService_GetMoviesFiltersByTitle(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")
	f.movie(t, "The Matrix", userID, day(1))
	f.movie(t, "Matrix Reloaded", userID, day(2))
	f.movie(t, "Inception", userID, day(3))

	page, err := f.svc.Movie.GetMovies(context.Background(), repository.MovieFilter{Title: "Matrix"}, &request.PaginatedRequest{Page: 1, PerPage: 20})

	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	for _, item := range page.Data {
		assert.Contains(t, asMap(t, item)["title"], "Matrix")
	}
}

func TestMovieService_GetMovieByIDEmbedsComments(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	movieID := f.movie(t, "Inception", alice, day(0))
	f.comment(t, "Dreams within dreams", bob, movieID)

	view, err := f.svc.Movie.GetMovieByID(context.Background(), movieID)

	require.NoError(t, err)
	comments := asMap(t, view)["comments"].([]any)
	require.Len(t, comments, 1)

	comment := asMap(t, comments[0])
	assert.ElementsMatch(t, []string{"id", "user_id", "content", "date"}, keys(comment))
	assert.Equal(t, "bob", asMap(t, comment["user_id"])["username"])
}

func TestMovieService_GetMovieByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Movie.GetMovieByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieService_UpdateMovieMergesFields(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")
	movieID := f.movie(t, "Inception", userID, day(0))

	newTitle := "Inception (2010)"
	view, err := f.svc.Movie.UpdateMovie(context.Background(), movieID, &request.MoviePatchRequest{
		Title: &newTitle,
		Stars: request.Nullable[int]{Set: true},
	})

	require.NoError(t, err)
	movie := asMap(t, view)
	assert.Equal(t, newTitle, movie["title"])
	assert.Nil(t, movie["stars"])
	assert.Equal(t, "A film about Inception", movie["description"])
	assert.Equal(t, queue.MovieUpdated, f.events.Names()[len(f.events.Names())-1])
}

func TestMovieService_UpdateMovieKeepsStarsWhenAbsent(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")
	movieID := f.movie(t, "Inception", userID, day(0))

	view, err := f.svc.Movie.UpdateMovie(context.Background(), movieID, &request.MoviePatchRequest{})

	require.NoError(t, err)
	stars, ok := asMap(t, view)["stars"].(*int)
	require.True(t, ok)
	assert.Equal(t, 4, *stars)
}

func TestMovieService_UpdateMovieExplicitNulls(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")
	movieID := f.movie(t, "Inception", userID, day(0))

	_, err := f.svc.Movie.UpdateMovie(context.Background(), movieID, &request.MoviePatchRequest{
		User: request.Nullable[request.UserReference]{Set: true},
		Date: request.Nullable[time.Time]{Set: true},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"user": "A movie must belong to a user",
		"date": "The date is required",
	}, verr.Fields)

	view, err := f.svc.Movie.GetMovieByID(context.Background(), movieID)
	require.NoError(t, err)
	assert.Equal(t, userID, asMap(t, asMap(t, view)["user"])["id"])
}

func TestMovieService_ReplaceMovieRequiresEveryField(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")
	movieID := f.movie(t, "Inception", userID, day(0))

	_, err := f.svc.Movie.ReplaceMovie(context.Background(), movieID, &request.MovieRequest{
		Title: "Inception",
		User:  request.UserReference(userID),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"description", "image", "watchLink", "date"}, mapKeys(verr.Fields))
}

func TestMovieService_DeleteMovieRemovesComments(t *testing.T) {
	f := newFixture(t)
	userID := f.user(t, "alice")
	movieID := f.movie(t, "Inception", userID, day(0))
	commentID := f.comment(t, "Great film", userID, movieID)

	require.NoError(t, f.svc.Movie.DeleteMovie(context.Background(), movieID))

	_, err := f.svc.Movie.GetMovieByID(context.Background(), movieID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Comment.GetCommentByID(context.Background(), commentID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.svc.Movie.DeleteMovie(context.Background(), movieID), ErrNotFound)
}

func mapKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
