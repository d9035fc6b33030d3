package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
	"github.com/heartmarshall/feedback-backend/pkg/ctxutil"
)

// Create classifies the comment and persists a fully annotated record.
// The record and its audit entry are written in one transaction, so a
// failure leaves nothing behind. A degraded classification is stored as is.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Feedback, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	author := strings.TrimSpace(input.Author)
	ts := s.now().UTC()
	if input.Timestamp != nil {
		ts = input.Timestamp.UTC()
	}

	cls := s.annotator.Classify(ctx, input.Text)

	var created *domain.Feedback
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.feedback.Create(txCtx, &domain.Feedback{
			ID:        uuid.New(),
			Author:    author,
			Text:      input.Text,
			Timestamp: ts,
			Sentiment: cls.Sentiment,
			Tags:      cls.Tags,
			Summary:   cls.Summary,
		})
		if createErr != nil {
			return fmt.Errorf("create feedback: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(ctx),
			EntityType: domain.EntityTypeFeedback,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"author":    author,
				"sentiment": string(cls.Sentiment),
				"degraded":  cls.Degraded,
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cls.Degraded {
		s.log.WarnContext(ctx, "feedback stored with fallback classification",
			slog.String("feedback_id", created.ID.String()),
		)
	}
	s.log.InfoContext(ctx, "feedback created",
		slog.String("feedback_id", created.ID.String()),
		slog.String("sentiment", string(created.Sentiment)),
	)

	return created, nil
}
