package adaptor

import (
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	User    *UserHandler
	Movie   *MovieHandler
	Comment *CommentHandler
	Health  *HealthHandler
}

func NewHandler(service *usecase.Service, health repository.Pinger, perPage int, log *zap.Logger) *Handler {
	return &Handler{
		User:    NewUserHandler(service.User, perPage, log),
		Movie:   NewMovieHandler(service.Movie, perPage, log),
		Comment: NewCommentHandler(service.Comment, perPage, log),
		Health:  NewHealthHandler(health, log),
	}
}
