package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/feedback-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type sentimentCountRow struct {
	Sentiment string `db:"sentiment"`
	Count     int    `db:"count"`
}

// CountBySentiment returns the number of records per sentiment label.
// When author is non-empty only that author's records are counted.
// Labels without records are absent from the result.
func (r *Repo) CountBySentiment(ctx context.Context, author string) ([]domain.SentimentCount, error) {
	query := postgres.Builder.
		Select("sentiment", "COUNT(*) AS count").
		From(table).
		GroupBy("sentiment").
		OrderBy("sentiment ASC")
	if author != "" {
		query = query.Where(sq.Eq{"author": author})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by sentiment: %w", err)
	}

	var rows []sentimentCountRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("count %s by sentiment: %w", entity, err)
	}

	out := make([]domain.SentimentCount, len(rows))
	for i, rw := range rows {
		out[i] = domain.SentimentCount{Sentiment: domain.Sentiment(rw.Sentiment), Count: rw.Count}
	}
	return out, nil
}

type authorCountRow struct {
	Author string `db:"author"`
	Count  int    `db:"count"`
}

// CountByAuthor returns the record count per author, most active first.
// Ties are ordered by author name.
func (r *Repo) CountByAuthor(ctx context.Context) ([]domain.AuthorActivity, error) {
	sql, args, err := postgres.Builder.
		Select("author", "COUNT(*) AS count").
		From(table).
		GroupBy("author").
		OrderBy("count DESC", "author ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by author: %w", err)
	}

	var rows []authorCountRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("count %s by author: %w", entity, err)
	}

	out := make([]domain.AuthorActivity, len(rows))
	for i, rw := range rows {
		out[i] = domain.AuthorActivity{Author: rw.Author, Count: rw.Count}
	}
	return out, nil
}

type recentRow struct {
	Author    string    `db:"author"`
	Sentiment string    `db:"sentiment"`
	Ts        time.Time `db:"ts"`
	Text      string    `db:"text"`
}

// Recent returns the limit most recent records in a compact projection.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.RecentFeedback, error) {
	sql, args, err := postgres.Builder.
		Select("author", "sentiment", "ts", "text").
		From(table).
		OrderBy("ts DESC", "seq DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent: %w", err)
	}

	var rows []recentRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("recent %s: %w", entity, err)
	}

	out := make([]domain.RecentFeedback, len(rows))
	for i, rw := range rows {
		out[i] = domain.RecentFeedback{
			Author:    rw.Author,
			Sentiment: domain.Sentiment(rw.Sentiment),
			Timestamp: rw.Ts.UTC(),
			Text:      rw.Text,
		}
	}
	return out, nil
}

// ListTexts returns the text of every record in insertion order.
func (r *Repo) ListTexts(ctx context.Context) ([]string, error) {
	sql, args, err := postgres.Builder.Select("text").From(table).OrderBy("seq ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list texts: %w", err)
	}

	var texts []string
	if err := pgxscan.Select(ctx, r.q(ctx), &texts, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s texts: %w", entity, err)
	}
	return texts, nil
}

// ShortestAndLongest returns the records with the fewest and the most
// characters. Among equal lengths the earliest inserted record wins.
// Returns domain.ErrNoRecords when the table is empty.
func (r *Repo) ShortestAndLongest(ctx context.Context) (shortest, longest *domain.Feedback, err error) {
	base := postgres.Builder.Select(columns...).From(table).Limit(1)

	shortest, err = r.getOne(ctx, base.OrderBy("char_length(text) ASC", "seq ASC"), "shortest")
	if err != nil {
		return nil, nil, noRecords(err)
	}
	longest, err = r.getOne(ctx, base.OrderBy("char_length(text) DESC", "seq ASC"), "longest")
	if err != nil {
		return nil, nil, noRecords(err)
	}
	return shortest, longest, nil
}

type dailyRow struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}

// CountByDay returns the record count per UTC calendar date, oldest first.
func (r *Repo) CountByDay(ctx context.Context) ([]domain.DailyVolume, error) {
	sql, args, err := postgres.Builder.
		Select("(ts AT TIME ZONE 'UTC')::date AS day", "COUNT(*) AS count").
		From(table).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by day: %w", err)
	}

	var rows []dailyRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("count %s by day: %w", entity, err)
	}

	out := make([]domain.DailyVolume, len(rows))
	for i, rw := range rows {
		out[i] = domain.DailyVolume{Date: startOfDay(rw.Day), Count: rw.Count}
	}
	return out, nil
}

func noRecords(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNoRecords
	}
	return err
}
