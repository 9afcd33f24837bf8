package state

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jorge-barreto/docsync/internal/llm"
)

// Recorder wraps a provider and saves every rendered prompt and raw response.
type Recorder struct {
	next         llm.Provider
	artifactsDir string

	mu  sync.Mutex
	seq int
}

// NewRecorder returns a provider that records into artifactsDir.
func NewRecorder(next llm.Provider, artifactsDir string) *Recorder {
	return &Recorder{next: next, artifactsDir: artifactsDir}
}

func (r *Recorder) Complete(ctx context.Context, req llm.Request) (string, error) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	prompt := fmt.Sprintf("<!-- system -->\n%s\n\n<!-- user -->\n%s\n", req.System, req.User)
	if err := os.WriteFile(PromptPath(r.artifactsDir, seq, req.Label), []byte(prompt), 0644); err != nil {
		return "", err
	}

	out, err := r.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if werr := os.WriteFile(ResponsePath(r.artifactsDir, seq, req.Label), []byte(out), 0644); werr != nil {
		return "", werr
	}
	return out, nil
}
