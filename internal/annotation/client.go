// Package annotation derives AI annotations for feedback comments through a
// text-generation backend. Structured tasks never fail: unusable output is
// replaced by a documented fallback flagged as degraded. Free-text tasks
// return errors wrapping domain.ErrAnnotationFailure.
package annotation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/feedback-backend/internal/adapter/llm"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

const (
	// MaxTags bounds the number of tags kept from a classification.
	MaxTags = 5

	// FallbackSummary is the summary of a degraded classification.
	FallbackSummary = "could not process"

	defaultMaxTokens int64 = 200
)

type generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// Client exposes one method per annotation task.
type Client struct {
	log       *slog.Logger
	gen       generator
	maxTokens int64
}

// NewClient creates a Client. maxTokens <= 0 selects the default cap.
func NewClient(log *slog.Logger, gen generator, maxTokens int64) *Client {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		log:       log.With("service", "annotation"),
		gen:       gen,
		maxTokens: maxTokens,
	}
}

// FallbackClassification returns the value substituted for unusable
// classification output.
func FallbackClassification() domain.Classification {
	return domain.Classification{
		Sentiment: domain.SentimentNeutral,
		Tags:      []string{},
		Summary:   FallbackSummary,
		Degraded:  true,
	}
}

// Classify assigns sentiment, tags and a one-sentence summary to comment.
func (c *Client) Classify(ctx context.Context, comment string) domain.Classification {
	raw, err := c.gen.Generate(ctx, c.request(classifyTask, comment))
	if err != nil {
		c.log.WarnContext(ctx, "classification degraded", slog.String("reason", "generate"), slog.String("error", err.Error()))
		return FallbackClassification()
	}

	cls, ok := parseClassification(raw)
	if !ok {
		c.log.WarnContext(ctx, "classification degraded", slog.String("reason", "unparsable"), slog.String("raw", truncate(raw)))
		return FallbackClassification()
	}
	return cls
}

// Empathize writes a professional, empathetic reply to comment.
func (c *Client) Empathize(ctx context.Context, comment string) (string, error) {
	return c.freeText(ctx, empathizeTask, comment)
}

// Suggest proposes one actionable improvement derived from comment.
func (c *Client) Suggest(ctx context.Context, comment string) (string, error) {
	return c.freeText(ctx, suggestTask, comment)
}

// AssessToxicity reports whether comment is toxic. Unusable output yields
// Toxic == nil with the raw answer echoed in Reason.
func (c *Client) AssessToxicity(ctx context.Context, comment string) domain.Toxicity {
	raw, err := c.gen.Generate(ctx, c.request(toxicityTask, comment))
	if err != nil {
		c.log.WarnContext(ctx, "toxicity degraded", slog.String("reason", "generate"), slog.String("error", err.Error()))
		return domain.Toxicity{Reason: toxicityFallbackReason(""), Degraded: true}
	}

	tox, ok := parseToxicity(raw)
	if !ok {
		c.log.WarnContext(ctx, "toxicity degraded", slog.String("reason", "unparsable"), slog.String("raw", truncate(raw)))
		return domain.Toxicity{Reason: toxicityFallbackReason(raw), Degraded: true}
	}
	return tox
}

// ClassifyUrgency labels comment as urgent, normal or low. Answers outside
// that set map to domain.UrgencyUnknown.
func (c *Client) ClassifyUrgency(ctx context.Context, comment string) (domain.Urgency, error) {
	raw, err := c.gen.Generate(ctx, c.request(urgencyTask, comment))
	if err != nil {
		return "", fmt.Errorf("classify urgency: %w: %w", domain.ErrAnnotationFailure, err)
	}

	u, ok := domain.ParseUrgency(raw)
	if !ok {
		c.log.WarnContext(ctx, "urgency out of range", slog.String("raw", truncate(raw)))
	}
	return u, nil
}

// DetectTrend states in one sentence whether the sentiment history improves,
// declines or stays stable.
func (c *Client) DetectTrend(ctx context.Context, history []domain.Sentiment) (string, error) {
	labels := make([]string, len(history))
	for i, s := range history {
		labels[i] = string(s)
	}
	return c.freeText(ctx, trendTask, "["+strings.Join(labels, ", ")+"]")
}

func (c *Client) freeText(ctx context.Context, t task, input string) (string, error) {
	out, err := c.gen.Generate(ctx, c.request(t, input))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", t.name, domain.ErrAnnotationFailure, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%s: %w: %w", t.name, domain.ErrAnnotationFailure, llm.ErrEmptyResponse)
	}
	return out, nil
}

func (c *Client) request(t task, input string) llm.Request {
	return llm.Request{
		Name:        t.name,
		Instruction: t.instruction,
		Prompt:      fmt.Sprintf(t.prompt, input),
		Temperature: t.temperature,
		MaxTokens:   c.maxTokens,
		Schema:      t.schema,
	}
}

// truncate caps s at 300 bytes without splitting a rune.
func truncate(s string) string {
	const max = 300
	if len(s) <= max {
		return s
	}
	cut := 0
	for cut < max {
		_, size := utf8.DecodeRuneInString(s[cut:])
		if cut+size > max {
			break
		}
		cut += size
	}
	return s[:cut] + "..."
}
