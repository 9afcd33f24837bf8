// Package triage decides, per document, whether a diff requires it to change.
package triage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/docsync/internal/budget"
	"github.com/jorge-barreto/docsync/internal/config"
	"github.com/jorge-barreto/docsync/internal/corpus"
	"github.com/jorge-barreto/docsync/internal/llm"
	"github.com/jorge-barreto/docsync/internal/prompts"
	"github.com/jorge-barreto/docsync/internal/ux"
)

// Engine asks the model about each document independently.
type Engine struct {
	Provider           llm.Provider
	Prompts            prompts.Set
	MaxDiffChars       int
	MaxDocContextChars int
	Concurrency        int
	// Report is called once per verdict. Defaults to ux.Verdict.
	Report func(path string, needed bool)
}

// New returns an Engine configured from cfg.
func New(p llm.Provider, cfg *config.Config, set prompts.Set) *Engine {
	return &Engine{
		Provider:           p,
		Prompts:            set,
		MaxDiffChars:       cfg.MaxDiffChars,
		MaxDocContextChars: cfg.MaxDocContextChars,
		Concurrency:        cfg.Concurrency,
	}
}

// Run returns the sorted paths of documents that need an update.
// Any model call error aborts the whole triage.
func (e *Engine) Run(ctx context.Context, diff, description string, docs corpus.Corpus) ([]string, error) {
	report := e.Report
	if report == nil {
		report = ux.Verdict
	}
	diff = budget.Truncate(diff, e.MaxDiffChars)
	desc := prompts.DescriptionSection(description)

	var (
		mu      sync.Mutex
		flagged []string
	)
	g, ctx := errgroup.WithContext(ctx)
	if e.Concurrency > 0 {
		g.SetLimit(e.Concurrency)
	}
	for _, path := range docs.Paths() {
		content := docs[path]
		g.Go(func() error {
			answer, err := e.Provider.Complete(ctx, llm.Request{
				Label:  "triage " + path,
				System: e.Prompts.TriageSystem,
				User: prompts.Render(e.Prompts.Triage, map[string]string{
					"DIFF":        diff,
					"DOC_PATH":    path,
					"CONTENT":     budget.Truncate(content, e.MaxDocContextChars),
					"DESCRIPTION": desc,
				}),
			})
			if err != nil {
				return fmt.Errorf("triaging %s: %w", path, err)
			}
			needed := ParseVerdict(answer)
			slog.Debug("triage verdict", "path", path, "needed", needed, "answer", strings.TrimSpace(answer))

			mu.Lock()
			defer mu.Unlock()
			report(path, needed)
			if needed {
				flagged = append(flagged, path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(flagged)
	return flagged, nil
}

// ParseVerdict normalizes a free-form answer. It is positive only when the
// answer contains the word YES in any letter case; anything else is negative.
func ParseVerdict(answer string) bool {
	words := strings.FieldsFunc(strings.ToUpper(answer), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if w == "YES" {
			return true
		}
	}
	return false
}
