package rest

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedback-backend/internal/domain"
	"github.com/heartmarshall/feedback-backend/internal/service/auth"
	"github.com/heartmarshall/feedback-backend/internal/service/enrichment"
)

type fakeFeedback struct {
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	ListFn   func(ctx context.Context) ([]domain.Feedback, error)
	FilterFn func(ctx context.Context, f domain.FeedbackFilter) ([]domain.Feedback, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, fields map[string]json.RawMessage) (*domain.Feedback, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error
	CreateFn func(ctx context.Context, input enrichment.CreateInput) (*domain.Feedback, error)

	HistoryFn func(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

func (f *fakeFeedback) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	return f.HistoryFn(ctx, id)
}

func (f *fakeFeedback) Get(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeFeedback) List(ctx context.Context) ([]domain.Feedback, error) {
	return f.ListFn(ctx)
}

func (f *fakeFeedback) Filter(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, error) {
	return f.FilterFn(ctx, filter)
}

func (f *fakeFeedback) Update(ctx context.Context, id uuid.UUID, fields map[string]json.RawMessage) (*domain.Feedback, error) {
	return f.UpdateFn(ctx, id, fields)
}

func (f *fakeFeedback) Delete(ctx context.Context, id uuid.UUID) error {
	return f.DeleteFn(ctx, id)
}

func (f *fakeFeedback) Create(ctx context.Context, input enrichment.CreateInput) (*domain.Feedback, error) {
	return f.CreateFn(ctx, input)
}

type fakeEnrichment struct {
	ReplyFn      func(ctx context.Context, id uuid.UUID) (string, error)
	SuggestionFn func(ctx context.Context, id uuid.UUID) (string, error)
	ToxicityFn   func(ctx context.Context, id uuid.UUID) (domain.Toxicity, error)
	UrgencyFn    func(ctx context.Context, id uuid.UUID) (domain.Urgency, error)
}

func (f *fakeEnrichment) GenerateReply(ctx context.Context, id uuid.UUID) (string, error) {
	return f.ReplyFn(ctx, id)
}

func (f *fakeEnrichment) GenerateSuggestion(ctx context.Context, id uuid.UUID) (string, error) {
	return f.SuggestionFn(ctx, id)
}

func (f *fakeEnrichment) AssessToxicity(ctx context.Context, id uuid.UUID) (domain.Toxicity, error) {
	return f.ToxicityFn(ctx, id)
}

func (f *fakeEnrichment) ClassifyUrgency(ctx context.Context, id uuid.UUID) (domain.Urgency, error) {
	return f.UrgencyFn(ctx, id)
}

type fakeTrend struct {
	DetectFn func(ctx context.Context, author string) (*domain.Trend, error)
}

func (f *fakeTrend) Detect(ctx context.Context, author string) (*domain.Trend, error) {
	return f.DetectFn(ctx, author)
}

type fakeAnalytics struct {
	SummaryFn func(ctx context.Context) (*domain.SentimentSummary, error)
	AuthorFn  func(ctx context.Context, author string) (*domain.AuthorBreakdown, error)
	RankingFn func(ctx context.Context) ([]domain.AuthorActivity, error)
	RecentFn  func(ctx context.Context, n int) ([]domain.RecentFeedback, error)
	WordsFn   func(ctx context.Context) ([]domain.WordFrequency, error)
	LengthsFn func(ctx context.Context) (*domain.CommentLengths, error)
	DailyFn   func(ctx context.Context) ([]domain.DailyVolume, error)
}

func (f *fakeAnalytics) SentimentSummary(ctx context.Context) (*domain.SentimentSummary, error) {
	return f.SummaryFn(ctx)
}

func (f *fakeAnalytics) AuthorBreakdown(ctx context.Context, author string) (*domain.AuthorBreakdown, error) {
	return f.AuthorFn(ctx, author)
}

func (f *fakeAnalytics) ActivityRanking(ctx context.Context) ([]domain.AuthorActivity, error) {
	return f.RankingFn(ctx)
}

func (f *fakeAnalytics) Recent(ctx context.Context, n int) ([]domain.RecentFeedback, error) {
	return f.RecentFn(ctx, n)
}

func (f *fakeAnalytics) TopWords(ctx context.Context) ([]domain.WordFrequency, error) {
	return f.WordsFn(ctx)
}

func (f *fakeAnalytics) CommentLengths(ctx context.Context) (*domain.CommentLengths, error) {
	return f.LengthsFn(ctx)
}

func (f *fakeAnalytics) DailyVolume(ctx context.Context) ([]domain.DailyVolume, error) {
	return f.DailyFn(ctx)
}

type fakeAuth struct {
	RegisterFn func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFn    func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	MeFn       func(ctx context.Context) (*domain.User, error)
}

func (f *fakeAuth) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return f.RegisterFn(ctx, input)
}

func (f *fakeAuth) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return f.LoginFn(ctx, input)
}

func (f *fakeAuth) Me(ctx context.Context) (*domain.User, error) {
	return f.MeFn(ctx)
}
