package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// Get returns a single record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	return s.feedback.GetByID(ctx, id)
}

// historyLimit caps the audit entries returned for one record.
const historyLimit = 50

// History returns the audit trail of a record, newest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	if _, err := s.feedback.GetByID(ctx, id); err != nil {
		return nil, err
	}
	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeFeedback, id, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("feedback history: %w", err)
	}
	return records, nil
}

// List returns every record, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Feedback, error) {
	items, err := s.feedback.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

// Filter returns the records matching every set predicate, newest first.
func (s *Service) Filter(ctx context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error) {
	if err := validateFilter(&f); err != nil {
		return nil, err
	}
	items, err := s.feedback.Filter(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("filter feedback: %w", err)
	}
	return items, nil
}

func validateFilter(f *domain.FeedbackFilter) error {
	var errs []domain.FieldError

	if f.Author != nil {
		a := strings.TrimSpace(*f.Author)
		if a == "" {
			f.Author = nil
		} else {
			f.Author = &a
		}
	}
	if f.Sentiment != nil && !f.Sentiment.IsValid() {
		errs = append(errs, domain.FieldError{Field: "sentiment", Message: "must be positive, neutral or negative"})
	}
	if f.Urgency != nil && !f.Urgency.IsValid() {
		errs = append(errs, domain.FieldError{Field: "urgency", Message: "must be urgent, normal, low or unknown"})
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must not be after to"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
