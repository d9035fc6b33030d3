package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
	"github.com/heartmarshall/feedback-backend/pkg/ctxutil"
)

// Update applies a partial update described by a JSON object. Only the
// whitelisted fields may be set; null values leave the field untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, fields map[string]json.RawMessage) (*domain.Feedback, error) {
	patch, changed, err := buildPatch(fields)
	if err != nil {
		return nil, err
	}

	var updated *domain.Feedback
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.feedback.Update(txCtx, id, patch)
		if updateErr != nil {
			return fmt.Errorf("update feedback: %w", updateErr)
		}

		if len(changed) == 0 {
			return nil
		}
		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(ctx),
			EntityType: domain.EntityTypeFeedback,
			EntityID:   &id,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"fields": changed},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "feedback updated",
		slog.String("feedback_id", id.String()),
		slog.String("fields", strings.Join(changed, ",")),
	)
	return updated, nil
}

// Delete removes a record unconditionally.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get feedback: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.feedback.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete feedback: %w", deleteErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(ctx),
			EntityType: domain.EntityTypeFeedback,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"author": map[string]any{"old": f.Author},
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "feedback deleted",
		slog.String("feedback_id", id.String()),
		slog.String("author", f.Author),
	)
	return nil
}
