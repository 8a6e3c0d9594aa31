package adaptor

import (
	"context"
	"net/http"
	"time"

	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	db  repository.Pinger
	log *zap.Logger
}

func NewHealthHandler(db repository.Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log.With(zap.String("handler", "health")),
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Database ping failed", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Database unavailable")
		return
	}

	utils.ResponseSuccess(w, "OK", map[string]string{"database": "up"})
}
