package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/feedback-backend/internal/auth"
	"github.com/heartmarshall/feedback-backend/internal/config"
	"github.com/heartmarshall/feedback-backend/internal/domain"
	"github.com/heartmarshall/feedback-backend/pkg/ctxutil"
)

// defaultCfg returns a config suitable for most tests.
func defaultCfg() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenTTL: 30 * time.Minute,
		BcryptCost:     bcrypt.MinCost,
	}
}

// hashPassword returns a bcrypt hash for testing.
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	return string(hash)
}

func tokenMock() *jwtManagerMock {
	return &jwtManagerMock{
		GenerateAccessTokenFunc: func(uuid.UUID, domain.UserRole) (string, time.Time, error) {
			return "access_token_123", time.Now().Add(30 * time.Minute), nil
		},
	}
}

// ─── Register ───────────────────────────────────────────────────────────────

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	usersMock := &userRepoMock{
		CreateFunc: func(_ context.Context, user *domain.User) (*domain.User, error) {
			created := *user
			return &created, nil
		},
	}
	audit := &auditLoggerMock{}
	jwtMock := tokenMock()
	svc := NewService(slog.Default(), usersMock, audit, txManagerMock{}, jwtMock, defaultCfg())

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  New@Example.com ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	created := usersMock.CreateCalls()[0]
	if created.Email != "new@example.com" {
		t.Errorf("email: got=%s, want normalized new@example.com", created.Email)
	}
	if created.Role != domain.UserRoleUser {
		t.Errorf("role: got=%s, want=user", created.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")) != nil {
		t.Error("stored hash does not match the password")
	}
	if result.AccessToken != "access_token_123" || result.User.ID != created.ID {
		t.Errorf("unexpected result: %+v", result)
	}
	if calls := jwtMock.GenerateAccessTokenCalls(); len(calls) != 1 || calls[0].UserID != created.ID {
		t.Errorf("GenerateAccessToken calls = %+v", calls)
	}
	if len(audit.records) != 1 || audit.records[0].EntityType != domain.EntityTypeUser {
		t.Errorf("unexpected audit records: %+v", audit.records)
	}
}

func TestService_Register_EmailAlreadyTaken(t *testing.T) {
	t.Parallel()

	usersMock := &userRepoMock{
		CreateFunc: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	svc := NewService(slog.Default(), usersMock, &auditLoggerMock{}, txManagerMock{}, &jwtManagerMock{}, defaultCfg())

	result, err := svc.Register(context.Background(), RegisterInput{Email: "taken@example.com", Password: "password123"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("Register error: got=%v, want=ErrAlreadyExists", err)
	}
	if result != nil {
		t.Fatal("Register should return nil result when email is taken")
	}
}

func TestService_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{name: "empty email", input: RegisterInput{Password: "password123"}, field: "email"},
		{name: "invalid email", input: RegisterInput{Email: "not-an-email", Password: "password123"}, field: "email"},
		{name: "empty password", input: RegisterInput{Email: "a@example.com"}, field: "password"},
		{name: "short password", input: RegisterInput{Email: "a@example.com", Password: "short"}, field: "password"},
		{name: "password over 72 bytes", input: RegisterInput{Email: "a@example.com", Password: string(make([]byte, 73))}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			usersMock := &userRepoMock{}
			svc := NewService(slog.Default(), usersMock, &auditLoggerMock{}, txManagerMock{}, &jwtManagerMock{}, defaultCfg())

			_, err := svc.Register(context.Background(), tt.input)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Register error: got=%v, want ValidationError", err)
			}
			if ve.Errors[0].Field != tt.field {
				t.Errorf("field: got=%s, want=%s", ve.Errors[0].Field, tt.field)
			}
			if len(usersMock.CreateCalls()) != 0 {
				t.Error("users.Create must not be called")
			}
		})
	}
}

// ─── Login ──────────────────────────────────────────────────────────────────

func TestService_Login(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		Role:         domain.UserRoleUser,
	}
	usersMock := &userRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, domain.ErrNotFound
		},
	}

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{name: "success", input: LoginInput{Email: " ana@example.com ", Password: "correct-horse"}},
		{name: "wrong password", input: LoginInput{Email: "ana@example.com", Password: "wrong"}, wantErr: domain.ErrUnauthorized},
		{name: "unknown email", input: LoginInput{Email: "bob@example.com", Password: "correct-horse"}, wantErr: domain.ErrUnauthorized},
		{name: "missing password", input: LoginInput{Email: "ana@example.com"}, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(slog.Default(), usersMock, &auditLoggerMock{}, txManagerMock{}, tokenMock(), defaultCfg())

			result, err := svc.Login(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login error: got=%v, want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login returned error: %v", err)
			}
			if result.User.ID != user.ID || result.AccessToken == "" {
				t.Errorf("unexpected result: %+v", result)
			}
		})
	}
}

// ─── ValidateToken / Me ─────────────────────────────────────────────────────

func TestService_ValidateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtMock := &jwtManagerMock{
		ValidateAccessTokenFunc: func(token string) (auth.Identity, error) {
			if token != "valid" {
				return auth.Identity{}, errors.New("jwt validation failed")
			}
			return auth.Identity{UserID: userID, Role: domain.UserRoleAdmin}, nil
		},
	}
	svc := NewService(slog.Default(), &userRepoMock{}, &auditLoggerMock{}, txManagerMock{}, jwtMock, defaultCfg())

	id, err := svc.ValidateToken(context.Background(), "valid")
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if id.UserID != userID || !id.Role.IsAdmin() {
		t.Errorf("identity: got=%+v", id)
	}

	if _, err := svc.ValidateToken(context.Background(), "forged"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("ValidateToken error: got=%v, want=ErrUnauthorized", err)
	}
}

func TestService_Me(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Email: "ana@example.com"}
	usersMock := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(slog.Default(), usersMock, &auditLoggerMock{}, txManagerMock{}, &jwtManagerMock{}, defaultCfg())

	got, err := svc.Me(ctxutil.WithUserID(context.Background(), user.ID))
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("email: got=%s, want=%s", got.Email, user.Email)
	}

	if _, err := svc.Me(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous Me: got=%v, want=ErrUnauthorized", err)
	}
	if _, err := svc.Me(ctxutil.WithUserID(context.Background(), uuid.New())); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("deleted user Me: got=%v, want=ErrUnauthorized", err)
	}
}
