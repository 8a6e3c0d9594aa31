// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/pkg/middleware"
	"movie-review/pkg/queue"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired HTTP router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. A nil rdb disables the
// response cache.
func Wiring(
	repo *repository.Repository,
	publisher queue.Publisher,
	rdb redis.Cmdable,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, publisher, config, logger)
	handler := adaptor.NewHandler(service, repo.Health, config.Pagination.ItemsPerPage, logger)

	router := setupRouter(handler, rdb, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	rdb redis.Cmdable,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	if config.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(config.RateLimit, logger).Middleware)
	}
	if rdb != nil {
		r.Use(middleware.NewResponseCache(rdb, config.Redis.CacheTTL, config.Redis.Prefix, logger).Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	wireMovie(r, handler.Movie, handler.Comment)
	wireComment(r, handler.Comment)
	wireUser(r, handler.User)

	r.Get("/health", handler.Health.Check)

	return r
}
