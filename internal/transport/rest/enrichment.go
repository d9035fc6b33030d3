package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type enrichmentService interface {
	GenerateReply(ctx context.Context, id uuid.UUID) (string, error)
	GenerateSuggestion(ctx context.Context, id uuid.UUID) (string, error)
	AssessToxicity(ctx context.Context, id uuid.UUID) (domain.Toxicity, error)
	ClassifyUrgency(ctx context.Context, id uuid.UUID) (domain.Urgency, error)
}

// EnrichmentHandler serves the on-demand annotation endpoints.
type EnrichmentHandler struct {
	svc enrichmentService
	log *slog.Logger
}

// NewEnrichmentHandler creates an EnrichmentHandler.
func NewEnrichmentHandler(svc enrichmentService, logger *slog.Logger) *EnrichmentHandler {
	return &EnrichmentHandler{svc: svc, log: logger.With("handler", "enrichment")}
}

type toxicityResponse struct {
	Toxic    *bool  `json:"toxic"`
	Reason   string `json:"reason"`
	Degraded bool   `json:"degraded"`
}

// Reply handles POST /feedback/{id}/reply.
func (h *EnrichmentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reply, err := h.svc.GenerateReply(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// Suggestion handles POST /feedback/{id}/suggestion.
func (h *EnrichmentHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	suggestion, err := h.svc.GenerateSuggestion(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}

// Urgency handles POST /feedback/{id}/urgency.
func (h *EnrichmentHandler) Urgency(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	urgency, err := h.svc.ClassifyUrgency(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"urgency": urgency.String()})
}

// Toxicity handles GET /feedback/{id}/toxicity.
func (h *EnrichmentHandler) Toxicity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tox, err := h.svc.AssessToxicity(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toxicityResponse{Toxic: tox.Toxic, Reason: tox.Reason, Degraded: tox.Degraded})
}
