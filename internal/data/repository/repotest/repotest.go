// Package repotest provides an in-memory repository set with the same
// observable behaviour as the PostgreSQL repositories: generated ids,
// ordering, foreign key and unique checks, and fresh entities on every read.
package repotest

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
)

type movieRow struct {
	entity.Movie
	userID int64
}

type commentRow struct {
	entity.Comment
	userID  int64
	movieID int64
}

// Store holds the rows shared by the three fake repositories.
type Store struct {
	mu       sync.Mutex
	seq      int64
	users    map[int64]entity.User
	movies   map[int64]movieRow
	comments map[int64]commentRow

	// PingErr is returned by Ping.
	PingErr error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]entity.User),
		movies:   make(map[int64]movieRow),
		comments: make(map[int64]commentRow),
	}
}

// Repository wires the fakes into a repository set.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userRepo{s},
		Movie:   &movieRepo{s},
		Comment: &commentRepo{s},
		Health:  s,
	}
}

func (s *Store) Ping(context.Context) error {
	return s.PingErr
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) userRef(id int64) *entity.User {
	u := s.users[id]
	return &entity.User{Base: u.Base, Username: u.Username, Email: u.Email}
}

func (s *Store) movie(row movieRow) *entity.Movie {
	m := &entity.Movie{
		Base:        row.Base,
		Title:       row.Title,
		Description: row.Description,
		Image:       row.Image,
		WatchLink:   row.WatchLink,
		Date:        row.Date,
		User:        s.userRef(row.userID),
	}
	if row.Stars != nil {
		stars := *row.Stars
		m.Stars = &stars
	}
	return m
}

func (s *Store) comment(row commentRow) *entity.Comment {
	c := &entity.Comment{
		Base:    row.Base,
		Content: row.Content,
		Date:    row.Date,
		User:    s.userRef(row.userID),
	}
	s.movie(s.movies[row.movieID]).AddComment(c)
	return c
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	return keys
}

type userRepo struct{ s *Store }

func (r *userRepo) taken(user *entity.User) bool {
	for id, u := range r.s.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.taken(user) {
		return fmt.Errorf("create user: %w", repository.ErrConflict)
	}

	now := time.Now()
	user.ID = r.s.nextID()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = entity.User{Base: user.Base, Username: user.Username, Email: user.Email, PasswordHash: user.PasswordHash}
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := []*entity.User{}
	for _, id := range sortedKeys(r.s.users) {
		u := r.s.users[id]
		users = append(users, &u)
	}
	return page(users, limit, offset), nil
}

func (r *userRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return fmt.Errorf("update user %d: %w", user.ID, repository.ErrNotFound)
	}
	if r.taken(user) {
		return fmt.Errorf("update user %d: %w", user.ID, repository.ErrConflict)
	}

	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = entity.User{Base: user.Base, Username: user.Username, Email: user.Email, PasswordHash: user.PasswordHash}
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("delete user %d: %w", id, repository.ErrNotFound)
	}
	for _, m := range r.s.movies {
		if m.userID == id {
			return fmt.Errorf("delete user %d: %w", id, repository.ErrConflict)
		}
	}
	for _, c := range r.s.comments {
		if c.userID == id {
			return fmt.Errorf("delete user %d: %w", id, repository.ErrConflict)
		}
	}

	delete(r.s.users, id)
	return nil
}

type movieRepo struct{ s *Store }

func (r *movieRepo) row(movie *entity.Movie) movieRow {
	row := movieRow{Movie: *movie, userID: movie.UserID()}
	row.User = nil
	return row
}

func (r *movieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[movie.UserID()]; !ok {
		return fmt.Errorf("create movie: %w", repository.ErrConflict)
	}

	now := time.Now()
	movie.ID = r.s.nextID()
	movie.CreatedAt, movie.UpdatedAt = now, now
	r.s.movies[movie.ID] = r.row(movie)
	return nil
}

func (r *movieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return r.s.movie(row), nil
}

func (r *movieRepo) filtered(filter repository.MovieFilter) []*entity.Movie {
	movies := []*entity.Movie{}
	needle := strings.ToLower(filter.Title)
	for _, row := range r.s.movies {
		if needle != "" && !strings.Contains(strings.ToLower(row.Title), needle) {
			continue
		}
		movies = append(movies, r.s.movie(row))
	}

	slices.SortFunc(movies, func(a, b *entity.Movie) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return movies
}

func (r *movieRepo) FindAll(_ context.Context, filter repository.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(filter), limit, offset), nil
}

func (r *movieRepo) CountAll(_ context.Context, filter repository.MovieFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *movieRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	movies := []*entity.Movie{}
	for _, m := range r.filtered(repository.MovieFilter{}) {
		if m.UserID() == userID {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func (r *movieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[movie.ID]; !ok {
		return fmt.Errorf("update movie %d: %w", movie.ID, repository.ErrNotFound)
	}
	if _, ok := r.s.users[movie.UserID()]; !ok {
		return fmt.Errorf("update movie %d: %w", movie.ID, repository.ErrConflict)
	}

	movie.UpdatedAt = time.Now()
	r.s.movies[movie.ID] = r.row(movie)
	return nil
}

func (r *movieRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("delete movie %d: %w", id, repository.ErrNotFound)
	}

	for cid, c := range r.s.comments {
		if c.movieID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.movies, id)
	return nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) row(comment *entity.Comment) commentRow {
	row := commentRow{userID: comment.UserID(), movieID: comment.MovieID()}
	row.Base = comment.Base
	row.Content = comment.Content
	row.Date = comment.Date
	return row
}

func (r *commentRepo) checkRefs(comment *entity.Comment) bool {
	_, userOK := r.s.users[comment.UserID()]
	_, movieOK := r.s.movies[comment.MovieID()]
	return userOK && movieOK
}

func (r *commentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.checkRefs(comment) {
		return fmt.Errorf("create comment: %w", repository.ErrConflict)
	}

	now := time.Now()
	comment.ID = r.s.nextID()
	comment.CreatedAt, comment.UpdatedAt = now, now
	r.s.comments[comment.ID] = r.row(comment)
	return nil
}

func (r *commentRepo) FindByID(_ context.Context, id int64) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	return r.s.comment(row), nil
}

func (r *commentRepo) where(match func(commentRow) bool) []*entity.Comment {
	comments := []*entity.Comment{}
	for _, id := range sortedKeys(r.s.comments) {
		if row := r.s.comments[id]; match(row) {
			comments = append(comments, r.s.comment(row))
		}
	}
	return comments
}

func (r *commentRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.where(func(commentRow) bool { return true }), limit, offset), nil
}

func (r *commentRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.comments)), nil
}

func (r *commentRepo) FindByMovieID(_ context.Context, movieID int64, limit, offset int) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.where(func(c commentRow) bool { return c.movieID == movieID }), limit, offset), nil
}

func (r *commentRepo) CountByMovieID(_ context.Context, movieID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.where(func(c commentRow) bool { return c.movieID == movieID }))), nil
}

func (r *commentRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.where(func(c commentRow) bool { return c.userID == userID }), nil
}

func (r *commentRepo) LoadForMovies(_ context.Context, movies []*entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range sortedKeys(r.s.comments) {
		row := r.s.comments[id]
		for _, movie := range movies {
			if movie.ID != row.movieID {
				continue
			}
			movie.AddComment(&entity.Comment{
				Base:    row.Base,
				Content: row.Content,
				Date:    row.Date,
				User:    r.s.userRef(row.userID),
			})
			break
		}
	}
	return nil
}

func (r *commentRepo) Update(_ context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[comment.ID]; !ok {
		return fmt.Errorf("update comment %d: %w", comment.ID, repository.ErrNotFound)
	}
	if !r.checkRefs(comment) {
		return fmt.Errorf("update comment %d: %w", comment.ID, repository.ErrConflict)
	}

	comment.UpdatedAt = time.Now()
	r.s.comments[comment.ID] = r.row(comment)
	return nil
}

func (r *commentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return fmt.Errorf("delete comment %d: %w", id, repository.ErrNotFound)
	}
	delete(r.s.comments, id)
	return nil
}
