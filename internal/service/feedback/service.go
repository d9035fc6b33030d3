// Package feedback implements read, partial-update and delete operations
// over stored feedback records.
package feedback

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type feedbackRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
	Filter(ctx context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.FeedbackPatch) (*domain.Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the feedback store operations.
type Service struct {
	log      *slog.Logger
	feedback feedbackRepo
	audit    auditLogger
	tx       txManager
}

// NewService creates a new feedback service.
func NewService(log *slog.Logger, feedback feedbackRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		log:      log.With("service", "feedback"),
		feedback: feedback,
		audit:    audit,
		tx:       tx,
	}
}
