// Package trend derives a natural-language conclusion from an author's
// chronological sentiment history.
package trend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type feedbackRepo interface {
	ListByAuthor(ctx context.Context, author string) ([]domain.Feedback, error)
}

type trendDetector interface {
	DetectTrend(ctx context.Context, history []domain.Sentiment) (string, error)
}

// Service implements trend detection.
type Service struct {
	log      *slog.Logger
	feedback feedbackRepo
	detector trendDetector
}

// NewService creates a new trend service.
func NewService(log *slog.Logger, feedback feedbackRepo, detector trendDetector) *Service {
	return &Service{
		log:      log.With("service", "trend"),
		feedback: feedback,
		detector: detector,
	}
}

// Detect builds the author's sentiment history (oldest first, ties in
// insertion order) and asks the detector for a conclusion.
// Returns domain.ErrNotFound when the author has no records.
func (s *Service) Detect(ctx context.Context, author string) (*domain.Trend, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, domain.NewValidationError("author", "required")
	}

	records, err := s.feedback.ListByAuthor(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("list by author: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("author %q: %w", author, domain.ErrNotFound)
	}

	history := make([]domain.Sentiment, len(records))
	for i, r := range records {
		history[i] = r.Sentiment
	}

	conclusion, err := s.detector.DetectTrend(ctx, history)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "trend detected",
		slog.String("author", author),
		slog.Int("records", len(history)),
	)

	return &domain.Trend{
		Author:     author,
		History:    history,
		Conclusion: conclusion,
	}, nil
}
