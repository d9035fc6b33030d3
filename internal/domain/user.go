package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account allowed to mutate feedback.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

// AuditRecord is an entry in the audit log.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     *uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
