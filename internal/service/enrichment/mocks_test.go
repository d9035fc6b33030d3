package enrichment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

var (
	_ annotator    = &annotatorMock{}
	_ feedbackRepo = &feedbackRepoMock{}
	_ auditLogger  = &auditLoggerMock{}
	_ txManager    = &txManagerMock{}
)

type annotatorMock struct {
	ClassifyFunc        func(ctx context.Context, comment string) domain.Classification
	EmpathizeFunc       func(ctx context.Context, comment string) (string, error)
	SuggestFunc         func(ctx context.Context, comment string) (string, error)
	AssessToxicityFunc  func(ctx context.Context, comment string) domain.Toxicity
	ClassifyUrgencyFunc func(ctx context.Context, comment string) (domain.Urgency, error)

	mu    sync.RWMutex
	calls struct {
		Classify        []string
		Empathize       []string
		Suggest         []string
		AssessToxicity  []string
		ClassifyUrgency []string
	}
}

func (mock *annotatorMock) Classify(ctx context.Context, comment string) domain.Classification {
	if mock.ClassifyFunc == nil {
		panic("annotatorMock.ClassifyFunc: method is nil but annotator.Classify was just called")
	}
	mock.mu.Lock()
	mock.calls.Classify = append(mock.calls.Classify, comment)
	mock.mu.Unlock()
	return mock.ClassifyFunc(ctx, comment)
}

func (mock *annotatorMock) Empathize(ctx context.Context, comment string) (string, error) {
	if mock.EmpathizeFunc == nil {
		panic("annotatorMock.EmpathizeFunc: method is nil but annotator.Empathize was just called")
	}
	mock.mu.Lock()
	mock.calls.Empathize = append(mock.calls.Empathize, comment)
	mock.mu.Unlock()
	return mock.EmpathizeFunc(ctx, comment)
}

func (mock *annotatorMock) Suggest(ctx context.Context, comment string) (string, error) {
	if mock.SuggestFunc == nil {
		panic("annotatorMock.SuggestFunc: method is nil but annotator.Suggest was just called")
	}
	mock.mu.Lock()
	mock.calls.Suggest = append(mock.calls.Suggest, comment)
	mock.mu.Unlock()
	return mock.SuggestFunc(ctx, comment)
}

func (mock *annotatorMock) AssessToxicity(ctx context.Context, comment string) domain.Toxicity {
	if mock.AssessToxicityFunc == nil {
		panic("annotatorMock.AssessToxicityFunc: method is nil but annotator.AssessToxicity was just called")
	}
	mock.mu.Lock()
	mock.calls.AssessToxicity = append(mock.calls.AssessToxicity, comment)
	mock.mu.Unlock()
	return mock.AssessToxicityFunc(ctx, comment)
}

func (mock *annotatorMock) ClassifyUrgency(ctx context.Context, comment string) (domain.Urgency, error) {
	if mock.ClassifyUrgencyFunc == nil {
		panic("annotatorMock.ClassifyUrgencyFunc: method is nil but annotator.ClassifyUrgency was just called")
	}
	mock.mu.Lock()
	mock.calls.ClassifyUrgency = append(mock.calls.ClassifyUrgency, comment)
	mock.mu.Unlock()
	return mock.ClassifyUrgencyFunc(ctx, comment)
}

func (mock *annotatorMock) SuggestCalls() []string {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Suggest
}

func (mock *annotatorMock) EmpathizeCalls() []string {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Empathize
}

type feedbackRepoMock struct {
	CreateFunc               func(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	SetReplyFunc             func(ctx context.Context, id uuid.UUID, reply string) error
	SetSuggestionIfEmptyFunc func(ctx context.Context, id uuid.UUID, suggestion string) (string, error)
	SetUrgencyFunc           func(ctx context.Context, id uuid.UUID, urgency domain.Urgency) error

	mu    sync.RWMutex
	calls struct {
		Create               []*domain.Feedback
		SetReply             []string
		SetSuggestionIfEmpty []string
		SetUrgency           []domain.Urgency
	}
}

func (mock *feedbackRepoMock) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	if mock.CreateFunc == nil {
		panic("feedbackRepoMock.CreateFunc: method is nil but feedbackRepo.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, f)
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, f)
}

func (mock *feedbackRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	if mock.GetByIDFunc == nil {
		panic("feedbackRepoMock.GetByIDFunc: method is nil but feedbackRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *feedbackRepoMock) SetReply(ctx context.Context, id uuid.UUID, reply string) error {
	if mock.SetReplyFunc == nil {
		panic("feedbackRepoMock.SetReplyFunc: method is nil but feedbackRepo.SetReply was just called")
	}
	mock.mu.Lock()
	mock.calls.SetReply = append(mock.calls.SetReply, reply)
	mock.mu.Unlock()
	return mock.SetReplyFunc(ctx, id, reply)
}

func (mock *feedbackRepoMock) SetSuggestionIfEmpty(ctx context.Context, id uuid.UUID, suggestion string) (string, error) {
	if mock.SetSuggestionIfEmptyFunc == nil {
		panic("feedbackRepoMock.SetSuggestionIfEmptyFunc: method is nil but feedbackRepo.SetSuggestionIfEmpty was just called")
	}
	mock.mu.Lock()
	mock.calls.SetSuggestionIfEmpty = append(mock.calls.SetSuggestionIfEmpty, suggestion)
	mock.mu.Unlock()
	return mock.SetSuggestionIfEmptyFunc(ctx, id, suggestion)
}

func (mock *feedbackRepoMock) SetUrgency(ctx context.Context, id uuid.UUID, urgency domain.Urgency) error {
	if mock.SetUrgencyFunc == nil {
		panic("feedbackRepoMock.SetUrgencyFunc: method is nil but feedbackRepo.SetUrgency was just called")
	}
	mock.mu.Lock()
	mock.calls.SetUrgency = append(mock.calls.SetUrgency, urgency)
	mock.mu.Unlock()
	return mock.SetUrgencyFunc(ctx, id, urgency)
}

func (mock *feedbackRepoMock) CreateCalls() []*domain.Feedback {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Create
}

func (mock *feedbackRepoMock) SetReplyCalls() []string {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SetReply
}

func (mock *feedbackRepoMock) SetSuggestionIfEmptyCalls() []string {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SetSuggestionIfEmpty
}

func (mock *feedbackRepoMock) SetUrgencyCalls() []domain.Urgency {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SetUrgency
}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	mu    sync.RWMutex
	calls []domain.AuditRecord
}

func (mock *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	mock.mu.Lock()
	mock.calls = append(mock.calls, record)
	mock.mu.Unlock()
	return mock.LogFunc(ctx, record)
}

func (mock *auditLoggerMock) LogCalls() []domain.AuditRecord {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}
