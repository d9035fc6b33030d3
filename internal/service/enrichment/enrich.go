package enrichment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
	"github.com/heartmarshall/feedback-backend/pkg/ctxutil"
)

// GenerateReply writes an empathetic reply to a negative record and stores it.
// Records with any other sentiment fail with domain.ErrPreconditionFailed.
func (s *Service) GenerateReply(ctx context.Context, id uuid.UUID) (string, error) {
	f, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if f.Sentiment != domain.SentimentNegative {
		return "", fmt.Errorf("reply requires negative sentiment, got %s: %w", f.Sentiment, domain.ErrPreconditionFailed)
	}

	reply, err := s.annotator.Empathize(ctx, f.Text)
	if err != nil {
		return "", err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.feedback.SetReply(txCtx, id, reply); err != nil {
			return fmt.Errorf("set reply: %w", err)
		}
		return s.logEnrichment(txCtx, id, map[string]any{"field": "reply"})
	})
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "reply generated", slog.String("feedback_id", id.String()))
	return reply, nil
}

// GenerateSuggestion returns the stored suggestion, computing it on first
// use. Once stored it is never recomputed; concurrent first calls all
// return the text that was persisted first.
func (s *Service) GenerateSuggestion(ctx context.Context, id uuid.UUID) (string, error) {
	f, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if f.Suggestion != nil {
		return *f.Suggestion, nil
	}

	suggestion, err := s.annotator.Suggest(ctx, f.Text)
	if err != nil {
		return "", err
	}

	var stored string
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var setErr error
		stored, setErr = s.feedback.SetSuggestionIfEmpty(txCtx, id, suggestion)
		if setErr != nil {
			return fmt.Errorf("set suggestion: %w", setErr)
		}
		if stored != suggestion {
			return nil
		}
		return s.logEnrichment(txCtx, id, map[string]any{"field": "suggestion"})
	})
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "suggestion generated",
		slog.String("feedback_id", id.String()),
		slog.Bool("cached_by_peer", stored != suggestion),
	)
	return stored, nil
}

// AssessToxicity evaluates the record's text. The result is not persisted.
func (s *Service) AssessToxicity(ctx context.Context, id uuid.UUID) (domain.Toxicity, error) {
	f, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return domain.Toxicity{}, err
	}
	return s.annotator.AssessToxicity(ctx, f.Text), nil
}

// ClassifyUrgency recomputes the urgency label and overwrites the stored one.
func (s *Service) ClassifyUrgency(ctx context.Context, id uuid.UUID) (domain.Urgency, error) {
	f, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	urgency, err := s.annotator.ClassifyUrgency(ctx, f.Text)
	if err != nil {
		return "", err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.feedback.SetUrgency(txCtx, id, urgency); err != nil {
			return fmt.Errorf("set urgency: %w", err)
		}
		return s.logEnrichment(txCtx, id, map[string]any{"field": "urgency", "value": string(urgency)})
	})
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "urgency classified",
		slog.String("feedback_id", id.String()),
		slog.String("urgency", string(urgency)),
	)
	return urgency, nil
}

func (s *Service) logEnrichment(ctx context.Context, id uuid.UUID, changes map[string]any) error {
	err := s.audit.Log(ctx, domain.AuditRecord{
		UserID:     ctxutil.ActorFromCtx(ctx),
		EntityType: domain.EntityTypeFeedback,
		EntityID:   &id,
		Action:     domain.AuditActionEnrich,
		Changes:    changes,
	})
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
