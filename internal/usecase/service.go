package usecase

import (
	"context"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/internal/schema"
	"movie-review/pkg/queue"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User    UserService
	Movie   MovieService
	Comment CommentService
}

func NewService(repo *repository.Repository, publisher queue.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		User:    NewUserService(repo, publisher, config.Security, log),
		Movie:   NewMovieService(repo, publisher, log),
		Comment: NewCommentService(repo, publisher, log),
	}
}

// publish sends a domain event. A broker failure never fails the write
// that has already been committed.
func publish(ctx context.Context, publisher queue.Publisher, log *zap.Logger, name string, id int64) {
	if err := publisher.Publish(ctx, queue.NewEvent(name, id)); err != nil {
		log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("event", name),
			zap.Int64("id", id),
		)
	}
}

func normalizePage(req *request.PaginatedRequest) {
	if req.Page < 1 {
		req.Page = 1
	}
}

func paginate[E any](g schema.Group, items []E, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[any] {
	return response.NewPaginatedResponse(schema.NormalizeEach(g, items), req.Page, req.Limit(), total)
}

func resolveUser(ctx context.Context, users repository.UserRepository, ref request.UserReference) (*entity.User, error) {
	if ref == 0 {
		return nil, nil
	}

	user, err := users.FindByID(ctx, ref.ID())
	if err != nil {
		return nil, fmt.Errorf("resolve user %d: %w", ref.ID(), err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", ref.ID(), ErrInvalidReference)
	}

	return user, nil
}

func resolveMovie(ctx context.Context, movies repository.MovieRepository, ref request.MovieReference) (*entity.Movie, error) {
	if ref == 0 {
		return nil, nil
	}

	movie, err := movies.FindByID(ctx, ref.ID())
	if err != nil {
		return nil, fmt.Errorf("resolve movie %d: %w", ref.ID(), err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", ref.ID(), ErrInvalidReference)
	}

	return movie, nil
}
