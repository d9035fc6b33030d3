// Package auth implements account registration, password login and
// access-token validation.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/auth"
	"github.com/heartmarshall/feedback-backend/internal/config"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// jwtManager defines the token interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role domain.UserRole) (string, time.Time, error)
	ValidateAccessToken(token string) (auth.Identity, error)
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	audit auditLogger
	tx    txManager
	jwt   jwtManager
	cfg   config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	audit auditLogger,
	tx txManager,
	jwt jwtManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		audit: audit,
		tx:    tx,
		jwt:   jwt,
		cfg:   cfg,
	}
}
