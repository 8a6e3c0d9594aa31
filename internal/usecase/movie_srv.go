package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/internal/schema"
	"movie-review/pkg/queue"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, filter repository.MovieFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error)
	GetMovieByID(ctx context.Context, movieID int64) (any, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (any, error)
	ReplaceMovie(ctx context.Context, movieID int64, req *request.MovieRequest) (any, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.MoviePatchRequest) (any, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type movieService struct {
	repo      *repository.Repository
	publisher queue.Publisher
	log       *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	publisher queue.Publisher,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, filter repository.MovieFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error) {
	normalizePage(req)

	movies, err := s.repo.Movie.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	if err := s.repo.Comment.LoadForMovies(ctx, movies); err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	return paginate(schema.MoviesRead, movies, req, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (any, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, movie)
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (any, error) {
	movie := &entity.Movie{}
	if err := s.replaceFields(ctx, movie, req); err != nil {
		return nil, err
	}

	if err := s.validate(movie); err != nil {
		return nil, err
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)
	publish(ctx, s.publisher, s.log, queue.MovieCreated, movie.ID)

	return schema.Normalize(schema.MoviesRead, movie), nil
}

func (s *movieService) ReplaceMovie(ctx context.Context, movieID int64, req *request.MovieRequest) (any, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if err := s.replaceFields(ctx, movie, req); err != nil {
		return nil, err
	}

	return s.save(ctx, movie)
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MoviePatchRequest) (any, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Image != nil {
		movie.Image = *req.Image
	}
	if req.WatchLink != nil {
		movie.WatchLink = *req.WatchLink
	}
	if req.Stars.Set {
		movie.Stars = req.Stars.Ptr()
	}
	if req.Date.Set {
		movie.Date = req.Date.Value
	}
	if req.User.Set {
		user, err := resolveUser(ctx, s.repo.User, req.User.Value)
		if err != nil {
			return nil, err
		}
		movie.User = user
	}

	return s.save(ctx, movie)
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	publish(ctx, s.publisher, s.log, queue.MovieDeleted, movieID)

	return nil
}

func (s *movieService) findMovie(ctx context.Context, movieID int64) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}
	return movie, nil
}

func (s *movieService) replaceFields(ctx context.Context, movie *entity.Movie, req *request.MovieRequest) error {
	user, err := resolveUser(ctx, s.repo.User, req.User)
	if err != nil {
		return err
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.Image = req.Image
	movie.WatchLink = req.WatchLink
	movie.Stars = req.Stars
	movie.Date = time.Time{}
	if req.Date != nil {
		movie.Date = *req.Date
	}
	movie.User = user

	return nil
}

func (s *movieService) validate(movie *entity.Movie) error {
	if err := newValidationError(schema.Validate(schema.Movies, movie)); err != nil {
		s.log.Warn("Movie validation failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *movieService) save(ctx context.Context, movie *entity.Movie) (any, error) {
	if err := s.validate(movie); err != nil {
		return nil, err
	}

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	publish(ctx, s.publisher, s.log, queue.MovieUpdated, movie.ID)

	return s.view(ctx, movie)
}

func (s *movieService) view(ctx context.Context, movie *entity.Movie) (any, error) {
	if err := s.repo.Comment.LoadForMovies(ctx, []*entity.Movie{movie}); err != nil {
		return nil, fmt.Errorf("load movie comments: %w", err)
	}
	return schema.Normalize(schema.MoviesRead, movie), nil
}
