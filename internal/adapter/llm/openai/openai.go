// Package openai implements llm.Generator on top of the OpenAI Responses API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/heartmarshall/feedback-backend/internal/adapter/llm"
)

// Generator calls the Responses API. Requests carrying a schema use strict
// JSON-schema structured output.
type Generator struct {
	client *openai.Client
	model  string
}

// New creates a Generator. baseURL may be empty to use the public endpoint.
func New(apiKey, baseURL, model string) *Generator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &Generator{client: &client, model: model}
}

func (g *Generator) Generate(ctx context.Context, req llm.Request) (string, error) {
	if g.model == "" {
		return "", errors.New("openai: model is empty")
	}

	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(req.MaxTokens),
		Temperature:     openai.Float(req.Temperature),
		Instructions:    openai.String(req.Instruction),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Prompt, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if req.Schema != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        schemaName(req.Name),
					Schema:      req.Schema,
					Strict:      openai.Bool(true),
					Description: openai.String(req.Name + " result"),
					Type:        "json_schema",
				},
			},
		}
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai %s: %w", req.Name, err)
	}

	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return "", fmt.Errorf("openai %s: %w", req.Name, llm.ErrEmptyResponse)
	}
	return out, nil
}

// schemaName turns a task name into the identifier format the API accepts.
func schemaName(name string) string {
	if name == "" {
		return "Result"
	}
	var b strings.Builder
	for _, r := range name {
		if r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
