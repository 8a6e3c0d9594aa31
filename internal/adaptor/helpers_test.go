package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-review/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "validation", err: &usecase.ValidationError{Fields: map[string]string{"title": "The title cannot be blank"}}, code: http.StatusUnprocessableEntity},
		{name: "not found", err: fmt.Errorf("movie 3: %w", usecase.ErrNotFound), code: http.StatusNotFound},
		{name: "invalid id", err: fmt.Errorf(`"x": %w`, usecase.ErrInvalidID), code: http.StatusBadRequest},
		{name: "invalid reference", err: fmt.Errorf("user 9: %w", usecase.ErrInvalidReference), code: http.StatusBadRequest},
		{name: "conflict", err: fmt.Errorf("delete user 1: %w", usecase.ErrConflict), code: http.StatusConflict},
		{name: "unexpected", err: errors.New("connection reset"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(zap.NewNop(), rec, tt.err, "test")
			assert.Equal(t, tt.code, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["status"])
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(zap.NewNop(), rec, &usecase.ValidationError{Fields: map[string]string{"content": "The content cannot be blank"}}, "create comment")

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The content cannot be blank", body.Errors["content"])
}

func TestPathID(t *testing.T) {
	for raw, ok := range map[string]bool{"12": true, "0": false, "-3": false, "abc": false} {
		req := httptest.NewRequest(http.MethodGet, "/api/movies/"+raw, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", raw)
		req = req.WithContext(contextWithRoute(req, rctx))

		id, err := pathID(req)
		if ok {
			assert.NoError(t, err, raw)
			assert.Equal(t, int64(12), id)
		} else {
			assert.ErrorIs(t, err, usecase.ErrInvalidID, raw)
		}
	}
}

func TestPageRequest(t *testing.T) {
	req := pageRequest(httptest.NewRequest(http.MethodGet, "/api/movies?page=3", nil), 20)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 40, req.Offset())

	req = pageRequest(httptest.NewRequest(http.MethodGet, "/api/movies?page=nope", nil), 20)
	assert.Equal(t, 1, req.Page)
}

func contextWithRoute(r *http.Request, rctx *chi.Context) context.Context {
	return context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
}
