package feedback

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/feedback-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Filter returns records matching every set predicate, newest first.
//   - Author: case-insensitive substring, LIKE wildcards in the input match literally.
//   - From/To: calendar dates in UTC; both days are included entirely.
//   - Sentiment/Urgency: exact match.
func (r *Repo) Filter(ctx context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("ts DESC", "seq DESC")

	for _, pred := range filterPredicates(f) {
		query = query.Where(pred)
	}

	return r.list(ctx, query)
}

func filterPredicates(f domain.FeedbackFilter) []sq.Sqlizer {
	var preds []sq.Sqlizer

	if f.Author != nil && *f.Author != "" {
		preds = append(preds, sq.ILike{"author": "%" + likeEscaper.Replace(*f.Author) + "%"})
	}
	if f.From != nil {
		preds = append(preds, sq.GtOrEq{"ts": startOfDay(*f.From)})
	}
	if f.To != nil {
		preds = append(preds, sq.Lt{"ts": startOfDay(*f.To).AddDate(0, 0, 1)})
	}
	if f.Sentiment != nil {
		preds = append(preds, sq.Eq{"sentiment": string(*f.Sentiment)})
	}
	if f.Urgency != nil {
		preds = append(preds, sq.Eq{"urgency": string(*f.Urgency)})
	}

	return preds
}

// startOfDay truncates t to midnight of its calendar date, interpreted in UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
