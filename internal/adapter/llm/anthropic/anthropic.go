// Package anthropic implements llm.Generator on top of the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/feedback-backend/internal/adapter/llm"
)

// Generator calls the Messages API. A requested schema is appended to the
// system prompt; callers decode the answer with llm.DecodeJSON.
type Generator struct {
	client anthropic.Client
	model  string
}

// New creates a Generator. baseURL may be empty to use the public endpoint.
func New(apiKey, baseURL, model string) *Generator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Generator{client: anthropic.NewClient(opts...), model: model}
}

func (g *Generator) Generate(ctx context.Context, req llm.Request) (string, error) {
	if g.model == "" {
		return "", errors.New("anthropic: model is empty")
	}

	system, err := systemPrompt(req)
	if err != nil {
		return "", err
	}

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic %s: %w", req.Name, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		b.WriteString(block.Text)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("anthropic %s: %w", req.Name, llm.ErrEmptyResponse)
	}
	return out, nil
}

func systemPrompt(req llm.Request) (string, error) {
	if req.Schema == nil {
		return req.Instruction, nil
	}
	schema, err := json.Marshal(req.Schema)
	if err != nil {
		return "", fmt.Errorf("anthropic %s: marshal schema: %w", req.Name, err)
	}
	return req.Instruction + "\n\nAnswer ONLY with a JSON object matching this schema, no markdown:\n" + string(schema), nil
}
