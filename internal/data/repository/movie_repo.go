package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieFilter narrows the movie collection.
type MovieFilter struct {
	// Title matches case-insensitively anywhere in the title.
	Title string
}

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieSelect = `
		SELECT m.id, m.title, m.description, m.image, m.watch_link, m.stars,
		       m.date, m.created_at, m.updated_at,
		       u.id, u.username, u.email
		FROM movies m
		JOIN users u ON u.id = m.user_id
	`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	movie := entity.Movie{User: &entity.User{}}
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Image,
		&movie.WatchLink,
		&movie.Stars,
		&movie.Date,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.User.ID,
		&movie.User.Username,
		&movie.User.Email,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (f MovieFilter) where(args []any) (string, []any) {
	if f.Title == "" {
		return "", args
	}
	args = append(args, "%"+escapeLike(f.Title)+"%")
	return fmt.Sprintf(" WHERE m.title ILIKE $%d", len(args)), args
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (user_id, title, description, image, watch_link, stars, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.UserID(),
		movie.Title,
		movie.Description,
		movie.Image,
		movie.WatchLink,
		movie.Stars,
		movie.Date,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
			zap.Int64("user_id", movie.UserID()),
		)
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("create movie: %w", ErrConflict)
		}
		return fmt.Errorf("create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := movieSelect + ` WHERE m.id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(movieSelect)

	where, args := filter.where(nil)
	queryBuilder.WriteString(where)

	args = append(args, limit, offset)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.date DESC, m.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	movies, err := r.queryMovies(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.String("title", filter.Title),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := filter.where(nil)
	query := `SELECT COUNT(*) FROM movies m` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies",
			zap.Error(err),
			zap.String("title", filter.Title),
		)
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Movie, error) {
	query := movieSelect + ` WHERE m.user_id = $1 ORDER BY m.date DESC, m.id DESC`

	movies, err := r.queryMovies(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find movies by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find movies of user %d: %w", userID, err)
	}

	return movies, nil
}

func (r *movieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*entity.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET user_id = $2, title = $3, description = $4, image = $5,
		    watch_link = $6, stars = $7, date = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.ID,
		movie.UserID(),
		movie.Title,
		movie.Description,
		movie.Image,
		movie.WatchLink,
		movie.Stars,
		movie.Date,
	).Scan(&movie.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update movie %d: %w", movie.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("update movie %d: %w", movie.ID, ErrConflict)
		}
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	return nil
}

// Delete removes the movie together with its comments.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("delete movie %d: begin: %w", id, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE movie_id = $1`, id); err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to delete movie comments",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete comments of movie %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("delete movie %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit movie delete",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: commit: %w", id, err)
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
