// Package enrichment turns raw comments into annotated feedback records and
// runs the on-demand enrichment operations over existing records.
package enrichment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type annotator interface {
	Classify(ctx context.Context, comment string) domain.Classification
	Empathize(ctx context.Context, comment string) (string, error)
	Suggest(ctx context.Context, comment string) (string, error)
	AssessToxicity(ctx context.Context, comment string) domain.Toxicity
	ClassifyUrgency(ctx context.Context, comment string) (domain.Urgency, error)
}

type feedbackRepo interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	SetReply(ctx context.Context, id uuid.UUID, reply string) error
	SetSuggestionIfEmpty(ctx context.Context, id uuid.UUID, suggestion string) (string, error)
	SetUrgency(ctx context.Context, id uuid.UUID, urgency domain.Urgency) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service orchestrates annotation and persistence of feedback records.
type Service struct {
	log       *slog.Logger
	annotator annotator
	feedback  feedbackRepo
	audit     auditLogger
	tx        txManager
	now       func() time.Time
}

// NewService creates a new enrichment service.
func NewService(
	log *slog.Logger,
	annotator annotator,
	feedback feedbackRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		log:       log.With("service", "enrichment"),
		annotator: annotator,
		feedback:  feedback,
		audit:     audit,
		tx:        tx,
		now:       time.Now,
	}
}
