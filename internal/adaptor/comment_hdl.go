package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	perPage int
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, perPage int, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		perPage: perPage,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetComments handles GET /api/comments?page=N
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetComments(r.Context(), pageRequest(r, h.perPage))
	if err != nil {
		handleServiceError(h.log, w, err, "get comments")
		return
	}

	utils.ResponsePaginated(w, "Comments retrieved successfully", comments.Data, comments.Pagination)
}

// GetMovieComments handles GET /api/movies/{id}/comments?page=N
func (h *CommentHandler) GetMovieComments(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "get movie comments")
		return
	}

	comments, err := h.service.GetMovieComments(r.Context(), movieID, pageRequest(r, h.perPage))
	if err != nil {
		handleServiceError(h.log, w, err, "get movie comments")
		return
	}

	utils.ResponsePaginated(w, "Comments retrieved successfully", comments.Data, comments.Pagination)
}

// GetCommentByID handles GET /api/comments/{id}
func (h *CommentHandler) GetCommentByID(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "get comment by ID")
		return
	}

	comment, err := h.service.GetCommentByID(r.Context(), commentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get comment by ID")
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved successfully", comment)
}

// CreateComment handles POST /api/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req request.CommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", comment)
}

// ReplaceComment handles PUT /api/comments/{id}
func (h *CommentHandler) ReplaceComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "replace comment")
		return
	}

	var req request.CommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.service.ReplaceComment(r.Context(), commentID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "replace comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// UpdateComment handles PATCH /api/comments/{id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "update comment")
		return
	}

	var req request.CommentPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), commentID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r)
	if err != nil {
		handleServiceError(h.log, w, err, "delete comment")
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID); err != nil {
		handleServiceError(h.log, w, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "Comment deleted successfully", nil)
}
