package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jorge-barreto/docsync/internal/ambient"
	"github.com/jorge-barreto/docsync/internal/budget"
	"github.com/jorge-barreto/docsync/internal/fileblocks"
	"github.com/jorge-barreto/docsync/internal/llm"
	"github.com/jorge-barreto/docsync/internal/prompts"
)

// Batched makes a single model call covering every target and expects a
// JSON mapping of path to new content, omitting unchanged files.
type Batched struct {
	Provider llm.Provider
	Prompts  prompts.Set
	Options
}

func (g *Batched) Generate(ctx context.Context, in Input) (Result, error) {
	paths := in.Targets.Paths()
	resp, err := g.Provider.Complete(ctx, llm.Request{
		Label:  "update batch",
		System: g.Prompts.UpdateSystem,
		User: prompts.Render(g.Prompts.Batch, map[string]string{
			"PATHS":       prompts.PathList(paths),
			"DOCUMENTS":   ambient.Render(in.Targets),
			"DIFF":        budget.Truncate(in.Diff, g.MaxDiffChars),
			"DESCRIPTION": prompts.DescriptionSection(in.Description),
		}),
		JSON: true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating batch: %w", err)
	}

	files, err := ParseBatch(resp)
	if err != nil {
		return nil, err
	}
	slog.Debug("batched response decoded", "files", len(files))

	out := make(Result)
	for p, content := range files {
		if _, ok := in.Targets[p]; !ok {
			g.warn("ignoring generated content for %s: not a flagged document", p)
			continue
		}
		admit(in, g.Options, p, content, out)
	}
	return out, nil
}

// ParseBatch decodes a batched response. It accepts {"files": {...}}, a flat
// path to content object, either optionally wrapped in a code fence or prose,
// and falls back to file= annotated fenced blocks.
func ParseBatch(resp string) (map[string]string, error) {
	text := fileblocks.Unwrap(strings.TrimSpace(resp))
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		obj := text[start : end+1]

		var wrapped struct {
			Files map[string]string `json:"files"`
		}
		if err := json.Unmarshal([]byte(obj), &wrapped); err == nil && wrapped.Files != nil {
			return wrapped.Files, nil
		}
		var flat map[string]string
		if err := json.Unmarshal([]byte(obj), &flat); err == nil {
			return flat, nil
		}
	}

	if blocks := fileblocks.Parse(resp); len(blocks) > 0 {
		files := make(map[string]string, len(blocks))
		for _, b := range blocks {
			files[b.Path] = b.Content
		}
		return files, nil
	}
	return nil, fmt.Errorf("%w: expected a JSON object mapping paths to content, got %q", ErrUnparseableResponse, preview(resp))
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 120 {
		return string(r[:120]) + "..."
	}
	return s
}
