package generate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/docsync/internal/ambient"
	"github.com/jorge-barreto/docsync/internal/budget"
	"github.com/jorge-barreto/docsync/internal/llm"
	"github.com/jorge-barreto/docsync/internal/prompts"
)

// PerFile makes one model call per target, each returning raw file content.
type PerFile struct {
	Provider llm.Provider
	Prompts  prompts.Set
	Options
}

func (g *PerFile) Generate(ctx context.Context, in Input) (Result, error) {
	diff := budget.Truncate(in.Diff, g.MaxDiffChars)
	shared := ambient.Build(in.Targets, g.MaxDocContextChars)
	desc := prompts.DescriptionSection(in.Description)

	out := make(Result)
	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	if g.Concurrency > 0 {
		eg.SetLimit(g.Concurrency)
	}
	for _, p := range in.Targets.Paths() {
		eg.Go(func() error {
			resp, err := g.Provider.Complete(ctx, llm.Request{
				Label:  "update " + p,
				System: g.Prompts.UpdateSystem,
				User: prompts.Render(g.Prompts.Update, map[string]string{
					"TARGET_PATH":     p,
					"TARGET_CONTENT":  in.Targets[p],
					"DIFF":            diff,
					"DESCRIPTION":     desc,
					"AMBIENT_CONTEXT": shared,
					"FORMAT_RULES":    prompts.FormatRules(p, in.isConfig(p)),
				}),
			})
			if err != nil {
				return fmt.Errorf("generating %s: %w", p, err)
			}
			slog.Debug("generated content", "path", p, "chars", len(resp))

			mu.Lock()
			defer mu.Unlock()
			admit(in, g.Options, p, resp, out)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
