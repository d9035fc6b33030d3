package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type trendService interface {
	Detect(ctx context.Context, author string) (*domain.Trend, error)
}

// TrendHandler serves per-author sentiment trajectories.
type TrendHandler struct {
	svc trendService
	log *slog.Logger
}

// NewTrendHandler creates a TrendHandler.
func NewTrendHandler(svc trendService, logger *slog.Logger) *TrendHandler {
	return &TrendHandler{svc: svc, log: logger.With("handler", "trend")}
}

// Detect handles GET /trends/{author}.
func (h *TrendHandler) Detect(w http.ResponseWriter, r *http.Request) {
	trend, err := h.svc.Detect(r.Context(), r.PathValue("author"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	history := make([]string, len(trend.History))
	for i, s := range trend.History {
		history[i] = s.String()
	}
	writeJSON(w, http.StatusOK, trendResponse{Author: trend.Author, History: history, Conclusion: trend.Conclusion})
}
