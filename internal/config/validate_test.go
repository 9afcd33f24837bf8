package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "gpt-4o" {
		t.Fatalf("Model = %q", cfg.Model)
	}
	if cfg.BranchPrefix != "doc-update-pr" {
		t.Fatalf("BranchPrefix = %q", cfg.BranchPrefix)
	}
	if cfg.MaxDiffChars != 40000 || cfg.MaxDocContextChars != 50000 {
		t.Fatalf("budgets = %d/%d", cfg.MaxDiffChars, cfg.MaxDocContextChars)
	}
	if cfg.Strategy != StrategyPerFile {
		t.Fatalf("Strategy = %q", cfg.Strategy)
	}
	if cfg.Diff.Remote != "origin" || cfg.ContextLines() != 20 || cfg.InterHunkContext() != 15 {
		t.Fatalf("Diff = %+v", cfg.Diff)
	}
	if !cfg.FunctionContext() {
		t.Fatal("function context should default to true")
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "**/*.md" {
		t.Fatalf("Include = %v", cfg.Include)
	}
}

func TestValidate_UnknownStrategy(t *testing.T) {
	cfg := &Config{Strategy: "streaming"}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "unknown strategy") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_NegativeBudget(t *testing.T) {
	cfg := &Config{MaxDiffChars: -1}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "max-diff-chars") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_NegativeConcurrency(t *testing.T) {
	cfg := &Config{Concurrency: -2}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "concurrency") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_InvalidBranchPrefix(t *testing.T) {
	for _, p := range []string{"has space", "a..b", "-lead", "trail/"} {
		cfg := &Config{BranchPrefix: p}
		if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "branch-prefix") {
			t.Errorf("prefix %q: got %v", p, err)
		}
	}
}

func TestValidate_InvalidGlob(t *testing.T) {
	cfg := &Config{Include: []string{"docs/[.md"}}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "invalid pattern") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_PromptOverrideMissing(t *testing.T) {
	cfg := &Config{Dir: t.TempDir(), Prompts: Prompts{Triage: "prompts/triage.md"}}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_PromptOverrideExists(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "prompts"), 0755)
	os.WriteFile(filepath.Join(dir, "prompts", "triage.md"), []byte("x"), 0644)

	cfg := &Config{Dir: dir, Prompts: Prompts{Triage: "prompts/triage.md"}}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
}

func TestValidate_EmptyLabel(t *testing.T) {
	cfg := &Config{PullRequest: PullRequest{Labels: []string{"docs", " "}}}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "labels") {
		t.Fatalf("got %v", err)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".docsync.yaml")
	data := `model: gpt-4o-mini
strategy: batched
max-diff-chars: 1000
diff:
  context-lines: 5
  function-context: false
include:
  - "guide/**/*.md"
config-files:
  - "**/sidebar.yml"
pull-request:
  draft: true
  labels: [docs]
`
	os.WriteFile(path, []byte(data), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "gpt-4o-mini" || cfg.Strategy != StrategyBatched || cfg.MaxDiffChars != 1000 {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.ContextLines() != 5 || cfg.InterHunkContext() != 15 || cfg.FunctionContext() {
		t.Fatalf("Diff = %+v", cfg.Diff)
	}
	if cfg.MaxDocContextChars != 50000 {
		t.Fatalf("MaxDocContextChars default not applied: %d", cfg.MaxDocContextChars)
	}
	if !cfg.PullRequest.Draft || len(cfg.PullRequest.Labels) != 1 {
		t.Fatalf("PullRequest = %+v", cfg.PullRequest)
	}
	if cfg.Dir != dir {
		t.Fatalf("Dir = %q", cfg.Dir)
	}
}

func TestResolve_MissingDefaultFileUsesDefaults(t *testing.T) {
	cfg, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "gpt-4o" {
		t.Fatalf("Model = %q", cfg.Model)
	}
}

func TestResolve_MissingExplicitFileFails(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml"), "."); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{"OPENAI_MODEL": "o3", "OPENAI_BASE_URL": "http://localhost:8080/v1"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Model != "o3" || cfg.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("got %q %q", cfg.Model, cfg.BaseURL)
	}
}

func TestLoadSecrets_Missing(t *testing.T) {
	_, err := LoadSecrets(func(string) string { return "" })
	if err == nil || !strings.Contains(err.Error(), "GH_TOKEN and OPENAI_API_KEY") {
		t.Fatalf("got %v", err)
	}
}

func TestLoadSecrets_GitHubTokenFallback(t *testing.T) {
	env := map[string]string{"GITHUB_TOKEN": "gh", "OPENAI_API_KEY": "sk"}
	s, err := LoadSecrets(func(k string) string { return env[k] })
	if err != nil {
		t.Fatal(err)
	}
	if s.GitHubToken != "gh" || s.ModelAPIKey != "sk" {
		t.Fatalf("got %+v", s)
	}
}

func TestLoad_ExplicitZeroContextKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	data := "diff:\n  context-lines: 0\n  inter-hunk-context: 0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ContextLines() != 0 || cfg.InterHunkContext() != 0 {
		t.Fatalf("explicit zero replaced: -U%d --inter-hunk-context=%d", cfg.ContextLines(), cfg.InterHunkContext())
	}
}

func TestValidate_NegativeContextLines(t *testing.T) {
	n := -1
	cfg := &Config{Diff: Diff{ContextLines: &n}}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for negative context-lines")
	}
}
