package repository

import (
	"context"

	"movie-review/pkg/database"

	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Repository struct {
	User    UserRepository
	Movie   MovieRepository
	Comment CommentRepository
	Health  Pinger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Comment: NewCommentRepository(db, log),
		Health:  db,
	}
}
