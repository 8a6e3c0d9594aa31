package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"movie-review/internal/data/repository/repotest"
	"movie-review/internal/dto/request"
	"movie-review/pkg/queue"
	"movie-review/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc    *Service
	store  *repotest.Store
	events *queue.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repotest.NewStore()
	events := &queue.Recorder{}
	config := &utils.Config{Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost}}

	return &fixture{
		svc:    NewService(store.Repository(), events, config, zaptest.NewLogger(t)),
		store:  store,
		events: events,
	}
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected map, got %T", v)
	return m
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func (f *fixture) user(t *testing.T, name string) int64 {
	t.Helper()
	view, err := f.svc.User.CreateUser(context.Background(), &request.UserRequest{
		Username: name,
		Email:    name + "@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return asMap(t, view)["id"].(int64)
}

func movieRequest(title string, userID int64, date time.Time) *request.MovieRequest {
	stars := 4
	return &request.MovieRequest{
		Title:       title,
		Description: "A film about " + title,
		Image:       "poster.jpg",
		WatchLink:   "https://watch.example/" + title,
		Stars:       &stars,
		Date:        &date,
		User:        request.UserReference(userID),
	}
}

func (f *fixture) movie(t *testing.T, title string, userID int64, date time.Time) int64 {
	t.Helper()
	view, err := f.svc.Movie.CreateMovie(context.Background(), movieRequest(title, userID, date))
	require.NoError(t, err)
	return asMap(t, view)["id"].(int64)
}

func (f *fixture) comment(t *testing.T, content string, userID, movieID int64) int64 {
	t.Helper()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	view, err := f.svc.Comment.CreateComment(context.Background(), &request.CommentRequest{
		Content: content,
		Date:    &date,
		UserID:  request.UserReference(userID),
		MovieID: request.MovieReference(movieID),
	})
	require.NoError(t, err)
	return asMap(t, view)["id"].(int64)
}

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func title(n int) string {
	return fmt.Sprintf("Movie %02d", n)
}
