package state

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jorge-barreto/docsync/internal/llm"
)

func TestWriteFileAtomic_OverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	os.WriteFile(path, []byte("old"), 0644)

	if err := writeFileAtomic(path, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Fatalf("got %q", string(data))
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestSummary_Save(t *testing.T) {
	dir := t.TempDir()
	s := &Summary{RunID: "r1", SourceRepo: "acme/widgets", SourcePR: 42, Outcome: "published", Updated: []string{"docs/api.md"}}
	if err := s.Save(dir); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "run.json"))
	if err != nil {
		t.Fatal(err)
	}
	var loaded Summary
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.SourcePR != 42 || loaded.Updated[0] != "docs/api.md" {
		t.Fatalf("got %+v", loaded)
	}
}

func TestTiming_StartEndFlush(t *testing.T) {
	dir := t.TempDir()
	var tm Timing
	tm.AddStart("diff")
	time.Sleep(2 * time.Millisecond)
	if d := tm.AddEnd("diff"); d <= 0 {
		t.Fatalf("duration = %v", d)
	}
	tm.AddStart("triage")
	if err := tm.Flush(dir); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "timing.json"))
	if !strings.Contains(string(data), `"stage": "diff"`) || !strings.Contains(string(data), `"duration_ms"`) {
		t.Fatalf("timing = %s", data)
	}
	if !tm.Stages[1].End.IsZero() || tm.Stages[1].DurationMS != 0 {
		t.Fatalf("open stage should have no end: %+v", tm.Stages[1])
	}
	if tm.Total() < 2*time.Millisecond {
		t.Fatalf("total = %v", tm.Total())
	}
}

func TestTiming_AddEndWithoutStart(t *testing.T) {
	var tm Timing
	if d := tm.AddEnd("publish"); d != 0 {
		t.Fatalf("got %v", d)
	}
	if tm.Total() != 0 {
		t.Fatal("empty timing has no total")
	}
}

func TestRecorder_WritesPromptAndResponse(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	p := NewRecorder(llm.Func(func(ctx context.Context, req llm.Request) (string, error) {
		return "NO", nil
	}), dir)

	out, err := p.Complete(context.Background(), llm.Request{Label: "triage docs/api.md", System: "sys", User: "diff here"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "NO" {
		t.Fatalf("got %q", out)
	}

	prompt, err := os.ReadFile(PromptPath(dir, 1, "triage docs/api.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prompt), "diff here") {
		t.Fatalf("prompt = %q", prompt)
	}
	if filepath.Base(PromptPath(dir, 1, "triage docs/api.md")) != "001-triage_docs_api.md.md" {
		t.Fatalf("unexpected name %s", PromptPath(dir, 1, "triage docs/api.md"))
	}
	resp, _ := os.ReadFile(ResponsePath(dir, 1, "triage docs/api.md"))
	if string(resp) != "NO" {
		t.Fatalf("response = %q", resp)
	}
}

func TestRecorder_PropagatesError(t *testing.T) {
	dir := t.TempDir()
	EnsureDir(dir)
	boom := errors.New("boom")
	p := NewRecorder(llm.Func(func(ctx context.Context, req llm.Request) (string, error) {
		return "", boom
	}), dir)
	if _, err := p.Complete(context.Background(), llm.Request{Label: "x"}); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestWriteUpdates_MirrorsPaths(t *testing.T) {
	dir := t.TempDir()
	EnsureDir(dir)
	if err := WriteUpdates(dir, map[string]string{"docs/guide/api.md": "# API"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "updates", "docs", "guide", "api.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# API" {
		t.Fatalf("got %q", data)
	}
}

func TestWriteUpdates_RejectsEscape(t *testing.T) {
	dir := t.TempDir()
	EnsureDir(dir)
	if err := WriteUpdates(dir, map[string]string{"../../etc/passwd": "x"}); err == nil {
		t.Fatal("expected error for path escaping the artifacts dir")
	}
}
