// Package analytics computes corpus-wide aggregates over stored feedback.
// Counting is delegated to the store; shares, tokenisation and ranking are
// pure functions in this package.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/feedback-backend/internal/config"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type feedbackRepo interface {
	CountBySentiment(ctx context.Context, author string) ([]domain.SentimentCount, error)
	CountByAuthor(ctx context.Context) ([]domain.AuthorActivity, error)
	Recent(ctx context.Context, limit int) ([]domain.RecentFeedback, error)
	ListTexts(ctx context.Context) ([]string, error)
	ShortestAndLongest(ctx context.Context) (shortest, longest *domain.Feedback, err error)
	CountByDay(ctx context.Context) ([]domain.DailyVolume, error)
}

// Service implements the analytics engine.
type Service struct {
	log      *slog.Logger
	feedback feedbackRepo
	cfg      config.AnalyticsConfig
}

// NewService creates a new analytics service.
func NewService(log *slog.Logger, feedback feedbackRepo, cfg config.AnalyticsConfig) *Service {
	return &Service{
		log:      log.With("service", "analytics"),
		feedback: feedback,
		cfg:      cfg,
	}
}

// SentimentSummary returns the count and share of every sentiment label.
func (s *Service) SentimentSummary(ctx context.Context) (*domain.SentimentSummary, error) {
	counts, err := s.feedback.CountBySentiment(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("count by sentiment: %w", err)
	}
	summary := Summarize(counts)
	return &summary, nil
}

// AuthorBreakdown counts one author's records per sentiment.
// Returns domain.ErrNotFound when the author has no records.
func (s *Service) AuthorBreakdown(ctx context.Context, author string) (*domain.AuthorBreakdown, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, domain.NewValidationError("author", "required")
	}

	counts, err := s.feedback.CountBySentiment(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("count by sentiment: %w", err)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("author %q: %w", author, domain.ErrNotFound)
	}

	out := &domain.AuthorBreakdown{
		Author: author,
		Counts: make(map[domain.Sentiment]int, len(domain.Sentiments)),
	}
	for _, label := range domain.Sentiments {
		out.Counts[label] = 0
	}
	for _, c := range counts {
		out.Counts[c.Sentiment] += c.Count
	}
	return out, nil
}

// ActivityRanking returns the record count per author, most active first.
func (s *Service) ActivityRanking(ctx context.Context) ([]domain.AuthorActivity, error) {
	ranking, err := s.feedback.CountByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by author: %w", err)
	}
	return ranking, nil
}

// Recent returns the n most recent records. A non-positive n selects the
// configured default; n above the configured maximum is rejected.
func (s *Service) Recent(ctx context.Context, n int) ([]domain.RecentFeedback, error) {
	if n <= 0 {
		n = s.cfg.RecentDefault
	}
	if n > s.cfg.RecentMax {
		return nil, domain.NewValidationError("n", fmt.Sprintf("max %d", s.cfg.RecentMax))
	}

	items, err := s.feedback.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	return items, nil
}

// TopWords returns the most frequent non stop-words of the corpus.
func (s *Service) TopWords(ctx context.Context) ([]domain.WordFrequency, error) {
	texts, err := s.feedback.ListTexts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}

	words := TopWords(texts, s.cfg.TopWords)
	s.log.DebugContext(ctx, "top words computed",
		slog.Int("documents", len(texts)),
		slog.Int("words", len(words)),
	)
	return words, nil
}

// CommentLengths returns the shortest and the longest comment by character
// count. Returns domain.ErrNoRecords on an empty corpus.
func (s *Service) CommentLengths(ctx context.Context) (*domain.CommentLengths, error) {
	shortest, longest, err := s.feedback.ShortestAndLongest(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.CommentLengths{
		Shortest:      *shortest,
		ShortestChars: utf8.RuneCountInString(shortest.Text),
		Longest:       *longest,
		LongestChars:  utf8.RuneCountInString(longest.Text),
	}, nil
}

// DailyVolume returns the record count per UTC calendar date, oldest first.
func (s *Service) DailyVolume(ctx context.Context) ([]domain.DailyVolume, error) {
	days, err := s.feedback.CountByDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by day: %w", err)
	}
	return days, nil
}
