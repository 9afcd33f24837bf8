// Package llm wraps the chat-completion backend used for triage and generation.
package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Request is a single system+user completion.
type Request struct {
	// Label names the call in logs and artifacts, e.g. "triage docs/api.md".
	Label  string
	System string
	User   string
	// JSON asks the backend for a JSON object response.
	JSON bool
}

// Provider returns the free-form or structured text of one completion.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Limited spaces calls to at most rpm per minute. rpm <= 0 returns p unchanged.
func Limited(p Provider, rpm int) Provider {
	if rpm <= 0 {
		return p
	}
	return &limited{
		next:    p,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

type limited struct {
	next    Provider
	limiter *rate.Limiter
}

func (l *limited) Complete(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.next.Complete(ctx, req)
}
