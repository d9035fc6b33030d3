package rest

import (
	"net/http"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Feedback   *FeedbackHandler
	Enrichment *EnrichmentHandler
	Trend      *TrendHandler
	Metrics    *MetricsHandler
}

// NewRouter registers all routes on a ServeMux. Routes that persist data
// are wrapped with requireUser; reads are open to anonymous callers.
func NewRouter(h Handlers, requireUser func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	protected := func(fn http.HandlerFunc) http.Handler { return requireUser(fn) }

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /auth/register", h.Auth.Register)
	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.Handle("GET /auth/me", protected(h.Auth.Me))

	mux.Handle("POST /feedback", protected(h.Feedback.Create))
	mux.HandleFunc("GET /feedback", h.Feedback.List)
	mux.HandleFunc("GET /feedback/filter", h.Feedback.Filter)
	mux.HandleFunc("GET /feedback/{id}", h.Feedback.Get)
	mux.HandleFunc("GET /feedback/{id}/history", h.Feedback.History)
	mux.Handle("PATCH /feedback/{id}", protected(h.Feedback.Update))
	mux.Handle("DELETE /feedback/{id}", protected(h.Feedback.Delete))

	mux.Handle("POST /feedback/{id}/reply", protected(h.Enrichment.Reply))
	mux.Handle("POST /feedback/{id}/suggestion", protected(h.Enrichment.Suggestion))
	mux.Handle("POST /feedback/{id}/urgency", protected(h.Enrichment.Urgency))
	mux.HandleFunc("GET /feedback/{id}/toxicity", h.Enrichment.Toxicity)

	mux.HandleFunc("GET /trends/{author}", h.Trend.Detect)

	mux.HandleFunc("GET /metrics/summary", h.Metrics.Summary)
	mux.HandleFunc("GET /metrics/authors/{author}", h.Metrics.Author)
	mux.HandleFunc("GET /metrics/ranking", h.Metrics.Ranking)
	mux.HandleFunc("GET /metrics/recent", h.Metrics.Recent)
	mux.HandleFunc("GET /metrics/words", h.Metrics.Words)
	mux.HandleFunc("GET /metrics/lengths", h.Metrics.Lengths)
	mux.HandleFunc("GET /metrics/daily", h.Metrics.Daily)

	return mux
}
