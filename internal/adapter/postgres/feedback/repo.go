// Package feedback implements the Feedback repository using PostgreSQL.
// It provides CRUD, lazy-enrichment setters, filtered listing and the
// aggregate queries used by analytics.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/feedback-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

const (
	table  = "feedback"
	entity = "feedback"
)

var columns = []string{
	"id", "author", "text", "ts", "sentiment", "tags", "summary",
	"reply", "suggestion", "urgency", "created_at", "updated_at",
}

// Repo provides feedback persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new feedback repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// row mirrors a feedback table row.
type row struct {
	ID         uuid.UUID `db:"id"`
	Author     string    `db:"author"`
	Text       string    `db:"text"`
	Ts         time.Time `db:"ts"`
	Sentiment  string    `db:"sentiment"`
	Tags       string    `db:"tags"`
	Summary    string    `db:"summary"`
	Reply      *string   `db:"reply"`
	Suggestion *string   `db:"suggestion"`
	Urgency    *string   `db:"urgency"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Feedback {
	f := domain.Feedback{
		ID:         r.ID,
		Author:     r.Author,
		Text:       r.Text,
		Timestamp:  r.Ts.UTC(),
		Sentiment:  domain.Sentiment(r.Sentiment),
		Tags:       domain.ParseTags(r.Tags),
		Summary:    r.Summary,
		Reply:      r.Reply,
		Suggestion: r.Suggestion,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Urgency != nil {
		u := domain.Urgency(*r.Urgency)
		f.Urgency = &u
	}
	return f
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a fully annotated record and returns it as stored.
func (r *Repo) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	var urgency *string
	if f.Urgency != nil {
		s := string(*f.Urgency)
		urgency = &s
	}

	query := postgres.Builder.
		Insert(table).
		Columns("id", "author", "text", "ts", "sentiment", "tags", "summary", "reply", "suggestion", "urgency").
		Values(f.ID, f.Author, f.Text, f.Timestamp, string(f.Sentiment), domain.JoinTags(f.Tags), f.Summary,
			f.Reply, f.Suggestion, urgency).
		Suffix(returning())

	return r.getOne(ctx, query, f.ID)
}

// Update applies a partial update. Nil patch fields are left untouched.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.FeedbackPatch) (*domain.Feedback, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	query := postgres.Builder.Update(table).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning())

	if patch.Author != nil {
		query = query.Set("author", *patch.Author)
	}
	if patch.Timestamp != nil {
		query = query.Set("ts", patch.Timestamp.UTC())
	}
	if patch.Sentiment != nil {
		query = query.Set("sentiment", string(*patch.Sentiment))
	}
	if patch.Tags != nil {
		query = query.Set("tags", domain.JoinTags(*patch.Tags))
	}
	if patch.Summary != nil {
		query = query.Set("summary", *patch.Summary)
	}
	if patch.Reply != nil {
		query = query.Set("reply", *patch.Reply)
	}
	if patch.Suggestion != nil {
		query = query.Set("suggestion", *patch.Suggestion)
	}
	if patch.Urgency != nil {
		query = query.Set("urgency", string(*patch.Urgency))
	}

	return r.getOne(ctx, query, id)
}

// SetReply stores the empathetic reply, overwriting any previous one.
func (r *Repo) SetReply(ctx context.Context, id uuid.UUID, reply string) error {
	return r.setColumn(ctx, id, "reply", reply)
}

// SetUrgency stores the urgency label, overwriting any previous one.
func (r *Repo) SetUrgency(ctx context.Context, id uuid.UUID, urgency domain.Urgency) error {
	return r.setColumn(ctx, id, "urgency", string(urgency))
}

// SetSuggestionIfEmpty stores suggestion only when none is stored yet and
// returns the value that ended up persisted. Concurrent callers all observe
// the first writer's text.
func (r *Repo) SetSuggestionIfEmpty(ctx context.Context, id uuid.UUID, suggestion string) (string, error) {
	sql, args, err := postgres.Builder.Update(table).
		Set("suggestion", suggestion).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "suggestion": nil}).
		Suffix("RETURNING suggestion").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build update suggestion: %w", err)
	}

	var stored string
	err = r.q(ctx).QueryRow(ctx, sql, args...).Scan(&stored)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", postgres.MapError(err, entity, id)
	}

	// Either the record is gone or another writer won the race.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if existing.Suggestion == nil {
		return "", fmt.Errorf("%s %s: suggestion not stored", entity, id)
	}
	return *existing.Suggestion, nil
}

// Delete removes a record. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

func (r *Repo) setColumn(ctx context.Context, id uuid.UUID, column string, value any) error {
	sql, args, err := postgres.Builder.Update(table).
		Set(column, value).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", column, err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a record by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.getOne(ctx, query, id)
}

// ListAll returns every record, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("ts DESC", "seq DESC")
	return r.list(ctx, query)
}

// ListByAuthor returns one author's records in chronological order.
// Records sharing a timestamp keep their insertion order.
func (r *Repo) ListByAuthor(ctx context.Context, author string) ([]domain.Feedback, error) {
	query := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"author": author}).
		OrderBy("ts ASC", "seq ASC")
	return r.list(ctx, query)
}

// ListWithoutUrgency returns up to limit records that have no urgency yet,
// oldest first.
func (r *Repo) ListWithoutUrgency(ctx context.Context, limit int) ([]domain.Feedback, error) {
	query := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"urgency": nil}).
		OrderBy("seq ASC").
		Limit(uint64(limit))
	return r.list(ctx, query)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type sqlizer interface {
	ToSql() (string, []any, error)
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func (r *Repo) getOne(ctx context.Context, query sqlizer, key any) (*domain.Feedback, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", entity, err)
	}

	var dst row
	if err := pgxscan.Get(ctx, r.q(ctx), &dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, entity, key)
	}

	f := dst.toDomain()
	return &f, nil
}

func (r *Repo) list(ctx context.Context, query sqlizer) ([]domain.Feedback, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", entity, err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", entity, err)
	}

	out := make([]domain.Feedback, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}
