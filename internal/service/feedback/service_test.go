package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockFeedbackRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	listAllFn func(ctx context.Context) ([]domain.Feedback, error)
	filterFn  func(ctx context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error)
	updateFn  func(ctx context.Context, id uuid.UUID, patch domain.FeedbackPatch) (*domain.Feedback, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error

	updateCalls []domain.FeedbackPatch
}

func (m *mockFeedbackRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockFeedbackRepo) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return m.listAllFn(ctx)
}

func (m *mockFeedbackRepo) Filter(ctx context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error) {
	return m.filterFn(ctx, f)
}

func (m *mockFeedbackRepo) Update(ctx context.Context, id uuid.UUID, patch domain.FeedbackPatch) (*domain.Feedback, error) {
	m.updateCalls = append(m.updateCalls, patch)
	return m.updateFn(ctx, id, patch)
}

func (m *mockFeedbackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockAudit struct {
	records []domain.AuditRecord

	getByEntityFn func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

func (m *mockAudit) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	return m.getByEntityFn(ctx, entityType, entityID, limit)
}

func (m *mockAudit) Log(_ context.Context, r domain.AuditRecord) error {
	m.records = append(m.records, r)
	return nil
}

type mockTx struct{}

func (mockTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newService(repo *mockFeedbackRepo, audit *mockAudit) *Service {
	return NewService(slog.Default(), repo, audit, mockTx{})
}

func rawFields(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("unmarshal %s: %v", body, err)
	}
	return m
}

func fieldNames(err error) []string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		out[i] = fe.Field
	}
	return out
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdate_WhitelistedFields(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockFeedbackRepo{
		updateFn: func(_ context.Context, gotID uuid.UUID, _ domain.FeedbackPatch) (*domain.Feedback, error) {
			return &domain.Feedback{ID: gotID}, nil
		},
	}
	audit := &mockAudit{}
	svc := newService(repo, audit)

	body := `{"author":" Luis ","timestamp":"2025-03-01T10:00:00+02:00","sentiment":"Negative",
		"tags":[" ux ","","speed"],"urgency":"urgent","reply":null}`
	if _, err := svc.Update(context.Background(), id, rawFields(t, body)); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	p := repo.updateCalls[0]
	if p.Author == nil || *p.Author != "Luis" {
		t.Errorf("Author = %v", p.Author)
	}
	wantTS := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	if p.Timestamp == nil || !p.Timestamp.Equal(wantTS) {
		t.Errorf("Timestamp = %v, want %v", p.Timestamp, wantTS)
	}
	if p.Sentiment == nil || *p.Sentiment != domain.SentimentNegative {
		t.Errorf("Sentiment = %v", p.Sentiment)
	}
	if p.Tags == nil || !slices.Equal(*p.Tags, []string{"ux", "speed"}) {
		t.Errorf("Tags = %v", p.Tags)
	}
	if p.Urgency == nil || *p.Urgency != domain.UrgencyUrgent {
		t.Errorf("Urgency = %v", p.Urgency)
	}
	if p.Reply != nil {
		t.Error("null reply must be skipped")
	}

	if len(audit.records) != 1 || audit.records[0].Action != domain.AuditActionUpdate {
		t.Fatalf("unexpected audit records: %+v", audit.records)
	}
	wantFields := []string{"author", "sentiment", "tags", "timestamp", "urgency"}
	if got := audit.records[0].Changes["fields"].([]string); !slices.Equal(got, wantFields) {
		t.Errorf("audited fields = %v, want %v", got, wantFields)
	}
}

func TestUpdate_OnlyNulls(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{
		updateFn: func(_ context.Context, id uuid.UUID, p domain.FeedbackPatch) (*domain.Feedback, error) {
			if !p.IsEmpty() {
				t.Errorf("patch should be empty, got %+v", p)
			}
			return &domain.Feedback{ID: id}, nil
		},
	}
	audit := &mockAudit{}
	svc := newService(repo, audit)

	if _, err := svc.Update(context.Background(), uuid.New(), rawFields(t, `{"summary":null}`)); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if len(audit.records) != 0 {
		t.Error("a no-op update must not be audited")
	}
}

func TestUpdate_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{name: "text is immutable", body: `{"text":"rewritten"}`, fields: []string{"text"}},
		{name: "id is immutable", body: `{"id":"00000000-0000-0000-0000-000000000000"}`, fields: []string{"id"}},
		{name: "unknown key", body: `{"score":5,"author":"Ana"}`, fields: []string{"score"}},
		{name: "invalid sentiment", body: `{"sentiment":"angry"}`, fields: []string{"sentiment"}},
		{name: "invalid urgency", body: `{"urgency":"asap"}`, fields: []string{"urgency"}},
		{name: "blank author", body: `{"author":"  "}`, fields: []string{"author"}},
		{name: "tags not an array", body: `{"tags":"a,b"}`, fields: []string{"tags"}},
		{name: "bad timestamp", body: `{"timestamp":"yesterday"}`, fields: []string{"timestamp"}},
		{name: "several errors sorted", body: `{"text":"x","id":"y"}`, fields: []string{"id", "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockFeedbackRepo{}
			svc := newService(repo, &mockAudit{})

			_, err := svc.Update(context.Background(), uuid.New(), rawFields(t, tt.body))
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Update() error = %v, want ErrValidation", err)
			}
			if got := fieldNames(err); !slices.Equal(got, tt.fields) {
				t.Errorf("fields = %v, want %v", got, tt.fields)
			}
			if len(repo.updateCalls) != 0 {
				t.Error("nothing may be written when the patch is rejected")
			}
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{
		updateFn: func(context.Context, uuid.UUID, domain.FeedbackPatch) (*domain.Feedback, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newService(repo, &mockAudit{})

	_, err := svc.Update(context.Background(), uuid.New(), rawFields(t, `{"summary":"s"}`))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDelete(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	deleted := false
	repo := &mockFeedbackRepo{
		getByIDFn: func(context.Context, uuid.UUID) (*domain.Feedback, error) {
			return &domain.Feedback{ID: id, Author: "Ana"}, nil
		},
		deleteFn: func(context.Context, uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	audit := &mockAudit{}
	svc := newService(repo, audit)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if !deleted {
		t.Error("repo Delete not called")
	}
	if len(audit.records) != 1 || audit.records[0].Action != domain.AuditActionDelete {
		t.Errorf("unexpected audit records: %+v", audit.records)
	}
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{
		getByIDFn: func(context.Context, uuid.UUID) (*domain.Feedback, error) { return nil, domain.ErrNotFound },
	}
	svc := newService(repo, &mockAudit{})

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Filter
// ---------------------------------------------------------------------------

func TestFilter_NormalizesAndValidates(t *testing.T) {
	t.Parallel()

	t.Run("blank author is dropped", func(t *testing.T) {
		t.Parallel()

		var got domain.FeedbackFilter
		repo := &mockFeedbackRepo{
			filterFn: func(_ context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error) {
				got = f
				return []domain.Feedback{}, nil
			},
		}
		svc := newService(repo, &mockAudit{})

		blank := "  "
		if _, err := svc.Filter(context.Background(), domain.FeedbackFilter{Author: &blank}); err != nil {
			t.Fatalf("Filter: unexpected error: %v", err)
		}
		if got.Author != nil {
			t.Errorf("Author = %q, want nil", *got.Author)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		t.Parallel()

		svc := newService(&mockFeedbackRepo{}, &mockAudit{})
		from := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.Filter(context.Background(), domain.FeedbackFilter{From: &from, To: &to})
		if got := fieldNames(err); !slices.Equal(got, []string{"from"}) {
			t.Errorf("fields = %v, want [from]", got)
		}
	})

	t.Run("unknown sentiment", func(t *testing.T) {
		t.Parallel()

		svc := newService(&mockFeedbackRepo{}, &mockAudit{})
		s := domain.Sentiment("angry")

		_, err := svc.Filter(context.Background(), domain.FeedbackFilter{Sentiment: &s})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Filter() error = %v, want ErrValidation", err)
		}
	})
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

func TestHistory_ReturnsAuditTrail(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockFeedbackRepo{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Feedback, error) {
			return &domain.Feedback{ID: id}, nil
		},
	}
	var gotType domain.EntityType
	var gotLimit int
	audit := &mockAudit{
		getByEntityFn: func(_ context.Context, et domain.EntityType, eid uuid.UUID, limit int) ([]domain.AuditRecord, error) {
			gotType, gotLimit = et, limit
			return []domain.AuditRecord{{EntityID: &eid, Action: domain.AuditActionUpdate}}, nil
		},
	}

	got, err := newService(repo, audit).History(context.Background(), id)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(got) != 1 || got[0].Action != domain.AuditActionUpdate {
		t.Errorf("History() = %+v", got)
	}
	if gotType != domain.EntityTypeFeedback || gotLimit != historyLimit {
		t.Errorf("GetByEntity called with (%s, %d)", gotType, gotLimit)
	}
}

func TestHistory_UnknownRecord(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Feedback, error) {
			return nil, domain.ErrNotFound
		},
	}
	audit := &mockAudit{
		getByEntityFn: func(context.Context, domain.EntityType, uuid.UUID, int) ([]domain.AuditRecord, error) {
			t.Fatal("audit must not be queried for a missing record")
			return nil, nil
		},
	}

	_, err := newService(repo, audit).History(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("History() error = %v, want ErrNotFound", err)
	}
}
