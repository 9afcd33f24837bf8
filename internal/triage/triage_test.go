package triage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jorge-barreto/docsync/internal/corpus"
	"github.com/jorge-barreto/docsync/internal/llm"
	"github.com/jorge-barreto/docsync/internal/prompts"
)

// scriptedProvider answers each triage call by document path.
type scriptedProvider struct {
	mu       sync.Mutex
	answers  map[string]string
	err      error
	requests []llm.Request
}

func (p *scriptedProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.answers[strings.TrimPrefix(req.Label, "triage ")], nil
}

func newEngine(p llm.Provider) *Engine {
	return &Engine{
		Provider:           p,
		Prompts:            prompts.Defaults(),
		MaxDiffChars:       40000,
		MaxDocContextChars: 50000,
		Concurrency:        2,
		Report:             func(string, bool) {},
	}
}

func TestRun_FlagsOnlyPositive(t *testing.T) {
	p := &scriptedProvider{answers: map[string]string{
		"docs/api.md":   "YES",
		"docs/faq.md":   "NO",
		"docs/guide.md": "yes.",
	}}
	docs := corpus.Corpus{"docs/api.md": "# API", "docs/faq.md": "# FAQ", "docs/guide.md": "# Guide"}

	got, err := newEngine(p).Run(context.Background(), "+func Frobnicate(a, b int)", "", docs)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "docs/api.md,docs/guide.md" {
		t.Fatalf("got %v", got)
	}
	if len(p.requests) != 3 {
		t.Fatalf("expected one call per document, got %d", len(p.requests))
	}
}

func TestRun_EachRequestSeesOnlyItsDocument(t *testing.T) {
	p := &scriptedProvider{answers: map[string]string{}}
	docs := corpus.Corpus{"docs/api.md": "API-CONTENT", "docs/faq.md": "FAQ-CONTENT"}
	if _, err := newEngine(p).Run(context.Background(), "diff", "", docs); err != nil {
		t.Fatal(err)
	}
	for _, req := range p.requests {
		isAPI := strings.HasSuffix(req.Label, "api.md")
		if isAPI && strings.Contains(req.User, "FAQ-CONTENT") {
			t.Fatal("api triage saw faq content")
		}
		if !isAPI && strings.Contains(req.User, "API-CONTENT") {
			t.Fatal("faq triage saw api content")
		}
	}
}

func TestRun_TruncatesInputs(t *testing.T) {
	p := &scriptedProvider{answers: map[string]string{}}
	e := newEngine(p)
	e.MaxDiffChars = 10
	e.MaxDocContextChars = 5
	docs := corpus.Corpus{"a.md": "0123456789CONTENT"}
	if _, err := e.Run(context.Background(), "abcdefghijDIFFTAIL", "", docs); err != nil {
		t.Fatal(err)
	}
	user := p.requests[0].User
	if strings.Contains(user, "DIFFTAIL") || !strings.Contains(user, "abcdefghij") {
		t.Fatalf("diff not truncated: %s", user)
	}
	if strings.Contains(user, "56789") || !strings.Contains(user, "01234") {
		t.Fatalf("content not truncated: %s", user)
	}
}

func TestRun_IncludesDescription(t *testing.T) {
	p := &scriptedProvider{answers: map[string]string{}}
	docs := corpus.Corpus{"a.md": "A"}
	if _, err := newEngine(p).Run(context.Background(), "diff", "Adds a retry option", docs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.requests[0].User, "Pull Request Description:\nAdds a retry option") {
		t.Fatalf("description missing: %s", p.requests[0].User)
	}
}

func TestRun_ProviderErrorIsFatal(t *testing.T) {
	p := &scriptedProvider{err: errors.New("429 too many requests")}
	docs := corpus.Corpus{"a.md": "A"}
	_, err := newEngine(p).Run(context.Background(), "diff", "", docs)
	if err == nil || !strings.Contains(err.Error(), "triaging a.md") {
		t.Fatalf("got %v", err)
	}
}

func TestRun_ReportsEveryVerdict(t *testing.T) {
	p := &scriptedProvider{answers: map[string]string{"a.md": "YES"}}
	e := newEngine(p)
	seen := map[string]bool{}
	e.Report = func(path string, needed bool) { seen[path] = needed }
	if _, err := e.Run(context.Background(), "diff", "", corpus.Corpus{"a.md": "A", "b.md": "B"}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || !seen["a.md"] || seen["b.md"] {
		t.Fatalf("got %v", seen)
	}
}

func TestParseVerdict(t *testing.T) {
	cases := map[string]bool{
		"YES":                  true,
		"yes":                  true,
		" Yes.\n":              true,
		"**YES**":              true,
		"Answer: yes, because": true,
		"NO":                   false,
		"no":                   false,
		"":                     false,
		"maybe":                false,
		"I cannot determine":   false,
		"YESTERDAY it changed": false,
		"EYES only":            false,
	}
	for in, want := range cases {
		if got := ParseVerdict(in); got != want {
			t.Errorf("ParseVerdict(%q) = %v, want %v", in, got, want)
		}
	}
}
