package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
	"github.com/heartmarshall/feedback-backend/internal/service/enrichment"
)

const dateLayout = "2006-01-02"

type feedbackService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	List(ctx context.Context) ([]domain.Feedback, error)
	Filter(ctx context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]json.RawMessage) (*domain.Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

type feedbackCreator interface {
	Create(ctx context.Context, input enrichment.CreateInput) (*domain.Feedback, error)
}

// FeedbackHandler serves the feedback collection.
type FeedbackHandler struct {
	feedback feedbackService
	creator  feedbackCreator
	log      *slog.Logger
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(feedback feedbackService, creator feedbackCreator, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, creator: creator, log: logger.With("handler", "feedback")}
}

type createFeedbackRequest struct {
	Author    string     `json:"author"`
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp"`
}

// Create handles POST /feedback.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.creator.Create(r.Context(), enrichment.CreateInput{
		Author:    req.Author,
		Text:      req.Text,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFeedbackResponse(created))
}

// List handles GET /feedback.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedback.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFeedbackList(items))
}

// Filter handles GET /feedback/filter?author=&from=&to=&sentiment=&urgency=.
func (h *FeedbackHandler) Filter(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.feedback.Filter(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFeedbackList(items))
}

// Get handles GET /feedback/{id}.
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f, err := h.feedback.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFeedbackResponse(f))
}

// History handles GET /feedback/{id}/history.
func (h *FeedbackHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	records, err := h.feedback.History(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]auditResponse, len(records))
	for i := range records {
		out[i] = toAuditResponse(records[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Update handles PATCH /feedback/{id}. The body is a JSON object of
// field names to new values; null values are ignored.
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var fields map[string]json.RawMessage
	if err := decodeJSON(w, r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.feedback.Update(r.Context(), id, fields)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFeedbackResponse(updated))
}

// Delete handles DELETE /feedback/{id}.
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.feedback.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseFilter(q url.Values) (domain.FeedbackFilter, error) {
	var (
		f    domain.FeedbackFilter
		errs []domain.FieldError
	)

	if v := q.Get("author"); v != "" {
		f.Author = &v
	}
	for _, bound := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := q.Get(bound.key)
		if v == "" {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: bound.key, Message: "expected YYYY-MM-DD"})
			continue
		}
		*bound.dst = &t
	}
	if v := q.Get("sentiment"); v != "" {
		s := domain.Sentiment(v)
		f.Sentiment = &s
	}
	if v := q.Get("urgency"); v != "" {
		u := domain.Urgency(v)
		f.Urgency = &u
	}

	if len(errs) > 0 {
		return f, domain.NewValidationErrors(errs)
	}
	return f, nil
}
