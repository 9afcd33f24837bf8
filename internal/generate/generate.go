// Package generate produces replacement content for flagged documents.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/docsync/internal/config"
	"github.com/jorge-barreto/docsync/internal/corpus"
	"github.com/jorge-barreto/docsync/internal/fileblocks"
	"github.com/jorge-barreto/docsync/internal/llm"
	"github.com/jorge-barreto/docsync/internal/prompts"
	"github.com/jorge-barreto/docsync/internal/ux"
)

// ErrUnparseableResponse means a batched response could not be decoded into
// a path to content mapping.
var ErrUnparseableResponse = errors.New("unparseable model response")

// Input is everything a strategy needs for one run.
type Input struct {
	Diff        string
	Description string
	// Targets holds the flagged documents with their current content.
	Targets corpus.Corpus
	// IsConfigFile reports documents admitted as structured config files.
	IsConfigFile func(path string) bool
}

func (in Input) isConfig(p string) bool {
	return in.IsConfigFile != nil && in.IsConfigFile(p)
}

// Result maps a document path to its accepted new content.
type Result map[string]string

// Generator turns targets into accepted replacements.
type Generator interface {
	Generate(ctx context.Context, in Input) (Result, error)
}

// Options are the budgets and hooks shared by both strategies.
type Options struct {
	MaxDiffChars       int
	MaxDocContextChars int
	Concurrency        int
	// Warn reports a rejected file. Defaults to ux.Warn.
	Warn func(format string, args ...any)
}

func (o Options) warn(format string, args ...any) {
	if o.Warn != nil {
		o.Warn(format, args...)
		return
	}
	ux.Warn(format, args...)
}

// New returns the strategy named in cfg.
func New(cfg *config.Config, p llm.Provider, set prompts.Set) Generator {
	opts := Options{
		MaxDiffChars:       cfg.MaxDiffChars,
		MaxDocContextChars: cfg.MaxDocContextChars,
		Concurrency:        cfg.Concurrency,
	}
	if cfg.Strategy == config.StrategyBatched {
		return &Batched{Provider: p, Prompts: set, Options: opts}
	}
	return &PerFile{Provider: p, Prompts: set, Options: opts}
}

// Accept normalizes generated content and reports whether it is a real change.
// Leading blank lines and trailing whitespace are dropped; indentation and
// interior whitespace are kept. A trailing newline is restored when the
// original had one. Empty output and output equal to the normalized original
// are rejected.
func Accept(original, generated string) (string, bool) {
	if !startsWithFence(original) {
		generated = fileblocks.Unwrap(generated)
	}
	out := trimEdges(generated)
	if out == "" {
		return "", false
	}
	if strings.HasSuffix(original, "\n") || original == "" {
		out += "\n"
	}
	if out == original || trimEdges(out) == trimEdges(original) {
		return "", false
	}
	return out, true
}

func trimEdges(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 || strings.TrimSpace(s[:i]) != "" {
			return s
		}
		s = s[i+1:]
	}
}

func startsWithFence(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "```") || strings.HasPrefix(s, "~~~")
}

// checkFormat verifies that structured config content still parses.
func checkFormat(p, content string) error {
	switch strings.ToLower(path.Ext(p)) {
	case ".yml", ".yaml":
		var v any
		if err := yaml.Unmarshal([]byte(content), &v); err != nil {
			return fmt.Errorf("invalid yaml: %w", err)
		}
	case ".json":
		if !json.Valid([]byte(content)) {
			return fmt.Errorf("invalid json")
		}
	}
	return nil
}

// admit applies the acceptance filter and config format check to one file.
func admit(in Input, opts Options, p, generated string, out Result) {
	original := in.Targets[p]
	content, ok := Accept(original, generated)
	if !ok {
		return
	}
	if in.isConfig(p) {
		if err := checkFormat(p, content); err != nil {
			opts.warn("discarding generated %s: %v", p, err)
			return
		}
	}
	out[p] = content
}
