//go:build integration

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// UniqueAuthor returns an author name that no other test uses, so tests
// sharing the container do not see each other's rows.
func UniqueAuthor(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedFeedback inserts an annotated record directly and returns it.
func SeedFeedback(t *testing.T, pool *pgxpool.Pool, author, text string, sentiment domain.Sentiment, ts time.Time) domain.Feedback {
	t.Helper()

	f := domain.Feedback{
		ID:        uuid.New(),
		Author:    author,
		Text:      text,
		Timestamp: ts.UTC().Truncate(time.Microsecond),
		Sentiment: sentiment,
		Tags:      []string{"seed"},
		Summary:   "seeded record",
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO feedback (id, author, text, ts, sentiment, tags, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.Author, f.Text, f.Timestamp, string(f.Sentiment), domain.JoinTags(f.Tags), f.Summary,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFeedback: %v", err)
	}
	return f
}
