// Package llm defines the text-generation request shared by every backend
// and the throttling wrapper applied in front of them.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Request is one text-generation call.
// Schema, when set, asks the backend for JSON conforming to it.
type Request struct {
	Name        string
	Instruction string
	Prompt      string
	Temperature float64
	MaxTokens   int64
	Schema      map[string]any
}

// Generator produces text for a Request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrEmptyResponse is returned by backends when the model produced no text.
var ErrEmptyResponse = errors.New("empty model response")

// Throttled bounds every call of the wrapped Generator by a timeout and
// a shared rate limiter.
type Throttled struct {
	next    Generator
	limiter *rate.Limiter
	timeout time.Duration
}

// NewThrottled wraps next. rpm <= 0 disables rate limiting; timeout <= 0
// leaves the caller's deadline untouched.
func NewThrottled(next Generator, rpm float64, burst int, timeout time.Duration) *Throttled {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rpm > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rpm/60.0), burst)
	}
	return &Throttled{next: next, limiter: limiter, timeout: timeout}
}

func (t *Throttled) Generate(ctx context.Context, req Request) (string, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("limiter wait: %w", err)
	}

	return t.next.Generate(ctx, req)
}
