package adaptor

import (
	"net/http"
	"strings"

	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	perPage int
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, perPage int, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		perPage: perPage,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies?page=N&title=...
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	req := pageRequest(r, h.perPage)
	filter := repository.MovieFilter{Title: strings.TrimSpace(r.URL.Query().Get("title"))}

	movies, err := h.service.GetMovies(r.Context(), filter, req)
	if err != nil {
		handleServiceError(h.log, w, err, "get movies")
		return
	}

	utils.ResponsePaginated(w, "Movies retrieved successfully", movies.Data, movies.Pagination)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "get movie by ID")
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeBody(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// ReplaceMovie handles PUT /api/movies/{id}
func (h *MovieHandler) ReplaceMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "replace movie")
		return
	}

	var req request.MovieRequest
	if !decodeBody(w, r, &req) {
		return
	}

	movie, err := h.service.ReplaceMovie(r.Context(), movieID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "replace movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// UpdateMovie handles PATCH /api/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "update movie")
		return
	}

	var req request.MoviePatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "delete movie")
		return
	}

	if err := h.service.DeleteMovie(r.Context(), movieID); err != nil {
		handleServiceError(h.log, w, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}
