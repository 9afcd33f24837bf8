package ambient

import (
	"strings"
	"testing"

	"github.com/jorge-barreto/docsync/internal/corpus"
)

func TestBuild_SortedWithMarkers(t *testing.T) {
	docs := corpus.Corpus{
		"docs/guide.md": "# Guide",
		"docs/api.md":   "# API",
	}
	got := Build(docs, 1000)
	want := "\n--- FILE: docs/api.md ---\n# API\n\n\n--- FILE: docs/guide.md ---\n# Guide\n\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	docs := corpus.Corpus{"c.md": "C", "a.md": "A", "b.md": "B"}
	first := Build(docs, 1000)
	for i := 0; i < 10; i++ {
		if Build(docs, 1000) != first {
			t.Fatal("ambient context must not depend on map order")
		}
	}
}

func TestBuild_Truncates(t *testing.T) {
	docs := corpus.Corpus{"docs/api.md": strings.Repeat("x", 500)}
	got := Build(docs, 50)
	if len([]rune(got)) != 50 {
		t.Fatalf("expected 50 chars, got %d", len([]rune(got)))
	}
	if !strings.HasPrefix(got, "\n--- FILE: docs/api.md ---\n") {
		t.Fatalf("prefix must be kept: %q", got)
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(corpus.Corpus{}, 100); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_KeepsEveryDocument(t *testing.T) {
	docs := corpus.Corpus{
		"a.md": strings.Repeat("a", 300) + "END-A",
		"b.md": strings.Repeat("b", 300) + "END-B",
	}
	got := Render(docs)
	if !strings.Contains(got, "END-A") || !strings.Contains(got, "END-B") {
		t.Fatalf("render must not truncate: %q", got)
	}
	if Build(docs, 1<<20) != got {
		t.Fatal("Build under budget should equal Render")
	}
}
