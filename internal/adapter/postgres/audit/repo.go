// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/feedback-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Log appends an audit record. Inside RunInTx it joins the caller's
// transaction so the entry commits or rolls back with the mutation.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	changes := record.Changes
	if changes == nil {
		changes = map[string]any{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("audit_record marshal changes: %w", err)
	}

	sql, args, err := postgres.Builder.Insert("audit_log").
		Columns("id", "user_id", "entity_type", "entity_id", "action", "changes").
		Values(record.ID, record.UserID, string(record.EntityType), record.EntityID, string(record.Action), changesJSON).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit_record: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "audit_record", record.ID)
	}
	return nil
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	UserID     *uuid.UUID `db:"user_id"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	Action     string     `db:"action"`
	Changes    []byte     `db:"changes"`
	CreatedAt  time.Time  `db:"created_at"`
}

// GetByEntity returns the change history for a specific entity, newest first,
// limited to limit records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	sql, args, err := postgres.Builder.
		Select("id", "user_id", "entity_type", "entity_id", "action", "changes", "created_at").
		From("audit_log").
		Where(sq.Eq{"entity_type": string(entityType), "entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select audit_records: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, rw := range rows {
		rec := domain.AuditRecord{
			ID:         rw.ID,
			UserID:     rw.UserID,
			EntityType: domain.EntityType(rw.EntityType),
			EntityID:   rw.EntityID,
			Action:     domain.AuditAction(rw.Action),
			CreatedAt:  rw.CreatedAt,
		}
		if len(rw.Changes) > 0 {
			if err := json.Unmarshal(rw.Changes, &rec.Changes); err != nil {
				return nil, fmt.Errorf("audit_record %s unmarshal changes: %w", rw.ID, err)
			}
		}
		records[i] = rec
	}
	return records, nil
}
