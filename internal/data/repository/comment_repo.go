package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Comment, error)
	CountAll(ctx context.Context) (int64, error)
	FindByMovieID(ctx context.Context, movieID int64, limit, offset int) ([]*entity.Comment, error)
	CountByMovieID(ctx context.Context, movieID int64) (int64, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Comment, error)
	LoadForMovies(ctx context.Context, movies []*entity.Movie) error
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const commentSelect = `
		SELECT c.id, c.content, c.date, c.created_at, c.updated_at,
		       cu.id, cu.username, cu.email,
		       m.id, m.title, m.description, m.image, m.watch_link, m.stars,
		       m.date, m.created_at, m.updated_at,
		       mu.id, mu.username, mu.email
		FROM comments c
		JOIN users cu ON cu.id = c.user_id
		JOIN movies m ON m.id = c.movie_id
		JOIN users mu ON mu.id = m.user_id
	`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	comment := entity.Comment{User: &entity.User{}}
	movie := entity.Movie{User: &entity.User{}}

	err := row.Scan(
		&comment.ID,
		&comment.Content,
		&comment.Date,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.User.ID,
		&comment.User.Username,
		&comment.User.Email,
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

	movie.AddComment(&comment)
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (user_id, movie_id, content, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.UserID(),
		comment.MovieID(),
		comment.Content,
		comment.Date,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("user_id", comment.UserID()),
			zap.Int64("movie_id", comment.MovieID()),
		)
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("create comment: %w", ErrConflict)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}

	return comment, nil
}

func (r *commentRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Comment, error) {
	query := commentSelect + ` ORDER BY c.id LIMIT $1 OFFSET $2`

	comments, err := r.queryComments(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all comments",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&total); err != nil {
		r.log.Error("Failed to count comments", zap.Error(err))
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return total, nil
}

func (r *commentRepository) FindByMovieID(ctx context.Context, movieID int64, limit, offset int) ([]*entity.Comment, error) {
	query := commentSelect + ` WHERE c.movie_id = $1 ORDER BY c.id LIMIT $2 OFFSET $3`

	comments, err := r.queryComments(ctx, query, movieID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find comments by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find comments of movie %d: %w", movieID, err)
	}

	return comments, nil
}

func (r *commentRepository) CountByMovieID(ctx context.Context, movieID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE movie_id = $1`, movieID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count comments by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return 0, fmt.Errorf("count comments of movie %d: %w", movieID, err)
	}
	return total, nil
}

func (r *commentRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Comment, error) {
	query := commentSelect + ` WHERE c.user_id = $1 ORDER BY c.id`

	comments, err := r.queryComments(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find comments by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find comments of user %d: %w", userID, err)
	}

	return comments, nil
}

func (r *commentRepository) queryComments(ctx context.Context, query string, args ...any) ([]*entity.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

// LoadForMovies fills the comment collection of every movie in one query.
func (r *commentRepository) LoadForMovies(ctx context.Context, movies []*entity.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	byID := make(map[int64]*entity.Movie, len(movies))
	ids := make([]int64, 0, len(movies))
	for _, movie := range movies {
		if _, seen := byID[movie.ID]; seen {
			continue
		}
		byID[movie.ID] = movie
		ids = append(ids, movie.ID)
	}

	query := `
		SELECT c.id, c.content, c.date, c.created_at, c.updated_at, c.movie_id,
		       u.id, u.username, u.email
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.movie_id = ANY($1)
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load comments for movies",
			zap.Error(err),
			zap.Int("movies", len(ids)),
		)
		return fmt.Errorf("load comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int64
		comment := &entity.Comment{User: &entity.User{}}
		err := rows.Scan(
			&comment.ID,
			&comment.Content,
			&comment.Date,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&movieID,
			&comment.User.ID,
			&comment.User.Username,
			&comment.User.Email,
		)
		if err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}

		if movie, ok := byID[movieID]; ok {
			movie.AddComment(comment)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate comment rows: %w", err)
	}

	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	query := `
		UPDATE comments
		SET user_id = $2, movie_id = $3, content = $4, date = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.ID,
		comment.UserID(),
		comment.MovieID(),
		comment.Content,
		comment.Date,
	).Scan(&comment.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update comment %d: %w", comment.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update comment",
			zap.Error(err),
			zap.Int64("comment_id", comment.ID),
		)
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("update comment %d: %w", comment.ID, ErrConflict)
		}
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete comment %d: %w", id, ErrNotFound)
	}

	return nil
}
