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

type CommentService interface {
	GetComments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error)
	GetMovieComments(ctx context.Context, movieID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error)
	GetCommentByID(ctx context.Context, commentID int64) (any, error)
	CreateComment(ctx context.Context, req *request.CommentRequest) (any, error)
	ReplaceComment(ctx context.Context, commentID int64, req *request.CommentRequest) (any, error)
	UpdateComment(ctx context.Context, commentID int64, req *request.CommentPatchRequest) (any, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

type commentService struct {
	repo      *repository.Repository
	publisher queue.Publisher
	log       *zap.Logger
}

func NewCommentService(repo *repository.Repository, publisher queue.Publisher, log *zap.Logger) CommentService {
	return &commentService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) GetComments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error) {
	normalizePage(req)

	comments, err := s.repo.Comment.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}

	total, err := s.repo.Comment.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	return paginate(schema.CommentsRead, comments, req, total), nil
}

func (s *commentService) GetMovieComments(ctx context.Context, movieID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error) {
	normalizePage(req)

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}

	comments, err := s.repo.Comment.FindByMovieID(ctx, movieID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movie comments: %w", err)
	}

	total, err := s.repo.Comment.CountByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("count movie comments: %w", err)
	}

	return paginate(schema.CommentsRead, comments, req, total), nil
}

func (s *commentService) GetCommentByID(ctx context.Context, commentID int64) (any, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return schema.Normalize(schema.CommentsRead, comment), nil
}

func (s *commentService) CreateComment(ctx context.Context, req *request.CommentRequest) (any, error) {
	comment := &entity.Comment{}
	if err := s.replaceFields(ctx, comment, req); err != nil {
		return nil, err
	}

	if err := s.validate(comment); err != nil {
		return nil, err
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("movie_id", comment.MovieID()),
	)
	publish(ctx, s.publisher, s.log, queue.CommentCreated, comment.ID)

	return schema.Normalize(schema.CommentsRead, comment), nil
}

func (s *commentService) ReplaceComment(ctx context.Context, commentID int64, req *request.CommentRequest) (any, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.replaceFields(ctx, comment, req); err != nil {
		return nil, err
	}

	return s.save(ctx, comment)
}

func (s *commentService) UpdateComment(ctx context.Context, commentID int64, req *request.CommentPatchRequest) (any, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.Date.Set {
		comment.Date = req.Date.Value
	}
	if req.UserID.Set {
		user, err := resolveUser(ctx, s.repo.User, req.UserID.Value)
		if err != nil {
			return nil, err
		}
		comment.User = user
	}
	if req.MovieID.Set {
		if err := s.assignMovie(ctx, comment, req.MovieID.Value); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, comment)
}

func (s *commentService) DeleteComment(ctx context.Context, commentID int64) error {
	if err := s.repo.Comment.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	publish(ctx, s.publisher, s.log, queue.CommentDeleted, commentID)
	return nil
}

func (s *commentService) findComment(ctx context.Context, commentID int64) (*entity.Comment, error) {
	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
	}
	return comment, nil
}

func (s *commentService) replaceFields(ctx context.Context, comment *entity.Comment, req *request.CommentRequest) error {
	user, err := resolveUser(ctx, s.repo.User, req.UserID)
	if err != nil {
		return err
	}

	if err := s.assignMovie(ctx, comment, req.MovieID); err != nil {
		return err
	}

	comment.Content = req.Content
	comment.Date = time.Time{}
	if req.Date != nil {
		comment.Date = *req.Date
	}
	comment.User = user

	return nil
}

// assignMovie moves the comment to the referenced movie. The new movie
// takes the comment before the old one lets go, so the old movie's guard
// leaves the new reference in place.
func (s *commentService) assignMovie(ctx context.Context, comment *entity.Comment, ref request.MovieReference) error {
	current := comment.Movie()

	if ref == 0 {
		if current != nil {
			current.RemoveComment(comment)
		}
		return nil
	}

	if current != nil && current.ID == ref.ID() {
		return nil
	}

	movie, err := resolveMovie(ctx, s.repo.Movie, ref)
	if err != nil {
		return err
	}

	movie.AddComment(comment)
	if current != nil {
		current.RemoveComment(comment)
	}

	return nil
}

func (s *commentService) validate(comment *entity.Comment) error {
	if err := newValidationError(schema.Validate(schema.Comments, comment)); err != nil {
		s.log.Warn("Comment validation failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *commentService) save(ctx context.Context, comment *entity.Comment) (any, error) {
	if err := s.validate(comment); err != nil {
		return nil, err
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	publish(ctx, s.publisher, s.log, queue.CommentUpdated, comment.ID)

	return schema.Normalize(schema.CommentsRead, comment), nil
}
