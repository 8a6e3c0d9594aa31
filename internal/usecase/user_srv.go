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
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error)
	GetUserByID(ctx context.Context, userID int64) (any, error)
	CreateUser(ctx context.Context, req *request.UserRequest) (any, error)
	UpdateUser(ctx context.Context, userID int64, req *request.UserPatchRequest) (any, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	repo       *repository.Repository
	publisher  queue.Publisher
	bcryptCost int
	log        *zap.Logger
}

func NewUserService(repo *repository.Repository, publisher queue.Publisher, config utils.SecurityConfig, log *zap.Logger) UserService {
	cost := config.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &userService{
		repo:       repo,
		publisher:  publisher,
		bcryptCost: cost,
		log:        log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[any], error) {
	normalizePage(req)

	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	for _, user := range users {
		if err := s.loadOwned(ctx, user); err != nil {
			return nil, err
		}
	}

	return paginate(schema.UsersRead, users, req, total), nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (any, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, user)
}

func (s *userService) CreateUser(ctx context.Context, req *request.UserRequest) (any, error) {
	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
	}

	if err := s.validate(user, req); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.publisher, s.log, queue.UserCreated, user.ID)

	return schema.Normalize(schema.UsersRead, user), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req *request.UserPatchRequest) (any, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.validate(user, req); err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	publish(ctx, s.publisher, s.log, queue.UserUpdated, user.ID)

	return s.view(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.repo.User.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("User deleted", zap.Int64("user_id", userID))
	publish(ctx, s.publisher, s.log, queue.UserDeleted, userID)

	return nil
}

func (s *userService) findUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return user, nil
}

// validate checks the entity constraints and the password rules carried
// by the request.
func (s *userService) validate(user *entity.User, req any) error {
	if err := newValidationError(schema.Validate(schema.Users, user), utils.ValidateStruct(req)); err != nil {
		s.log.Warn("User validation failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *userService) loadOwned(ctx context.Context, user *entity.User) error {
	movies, err := s.repo.Movie.FindByUserID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load movies of user %d: %w", user.ID, err)
	}

	if err := s.repo.Comment.LoadForMovies(ctx, movies); err != nil {
		return fmt.Errorf("load comments of user %d movies: %w", user.ID, err)
	}

	comments, err := s.repo.Comment.FindByUserID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load comments of user %d: %w", user.ID, err)
	}

	user.Movies = movies
	user.Comments = comments
	return nil
}

func (s *userService) view(ctx context.Context, user *entity.User) (any, error) {
	if err := s.loadOwned(ctx, user); err != nil {
		return nil, err
	}
	return schema.Normalize(schema.UsersRead, user), nil
}
