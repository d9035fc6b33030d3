package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type analyticsService interface {
	SentimentSummary(ctx context.Context) (*domain.SentimentSummary, error)
	AuthorBreakdown(ctx context.Context, author string) (*domain.AuthorBreakdown, error)
	ActivityRanking(ctx context.Context) ([]domain.AuthorActivity, error)
	Recent(ctx context.Context, n int) ([]domain.RecentFeedback, error)
	TopWords(ctx context.Context) ([]domain.WordFrequency, error)
	CommentLengths(ctx context.Context) (*domain.CommentLengths, error)
	DailyVolume(ctx context.Context) ([]domain.DailyVolume, error)
}

// MetricsHandler serves the read-only analytics reports.
type MetricsHandler struct {
	svc analyticsService
	log *slog.Logger
}

// NewMetricsHandler creates a MetricsHandler.
func NewMetricsHandler(svc analyticsService, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{svc: svc, log: logger.With("handler", "metrics")}
}

// Summary handles GET /metrics/summary.
func (h *MetricsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.SentimentSummary(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := summaryResponse{Total: summary.Total, Shares: make([]sentimentShareResponse, len(summary.Shares))}
	for i, s := range summary.Shares {
		resp.Shares[i] = sentimentShareResponse{Sentiment: s.Sentiment.String(), Count: s.Count, Percentage: s.Percentage}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Author handles GET /metrics/authors/{author}.
func (h *MetricsHandler) Author(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.svc.AuthorBreakdown(r.Context(), r.PathValue("author"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := authorBreakdownResponse{Author: breakdown.Author, Counts: make(map[string]int, len(breakdown.Counts))}
	for s, n := range breakdown.Counts {
		resp.Counts[s.String()] = n
	}
	writeJSON(w, http.StatusOK, resp)
}

// Ranking handles GET /metrics/ranking.
func (h *MetricsHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.svc.ActivityRanking(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]activityResponse, len(ranking))
	for i, a := range ranking {
		resp[i] = activityResponse{Author: a.Author, Count: a.Count}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Recent handles GET /metrics/recent?n=.
func (h *MetricsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	n := 0
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("n", "must be an integer"))
			return
		}
		n = parsed
	}

	items, err := h.svc.Recent(r.Context(), n)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]recentResponse, len(items))
	for i, it := range items {
		resp[i] = recentResponse{Author: it.Author, Sentiment: it.Sentiment.String(), Timestamp: it.Timestamp, Text: it.Text}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Words handles GET /metrics/words.
func (h *MetricsHandler) Words(w http.ResponseWriter, r *http.Request) {
	words, err := h.svc.TopWords(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]wordResponse, len(words))
	for i, wf := range words {
		resp[i] = wordResponse{Word: wf.Word, Frequency: wf.Frequency}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Lengths handles GET /metrics/lengths.
func (h *MetricsHandler) Lengths(w http.ResponseWriter, r *http.Request) {
	lengths, err := h.svc.CommentLengths(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lengthsResponse{
		Shortest: lengthEntry{Feedback: toFeedbackResponse(&lengths.Shortest), Chars: lengths.ShortestChars},
		Longest:  lengthEntry{Feedback: toFeedbackResponse(&lengths.Longest), Chars: lengths.LongestChars},
	})
}

// Daily handles GET /metrics/daily.
func (h *MetricsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	days, err := h.svc.DailyVolume(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]dailyResponse, len(days))
	for i, d := range days {
		resp[i] = dailyResponse{Date: d.Date.UTC().Format(dateLayout), Count: d.Count}
	}
	writeJSON(w, http.StatusOK, resp)
}
