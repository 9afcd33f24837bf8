package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/docsync/internal/config"
)

func TestRender_Substitutes(t *testing.T) {
	got := Render("path=${DOC_PATH} diff=${DIFF}", map[string]string{
		"DOC_PATH": "docs/api.md",
		"DIFF":     "+func Frobnicate()",
	})
	if got != "path=docs/api.md diff=+func Frobnicate()" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_ValuesNotReexpanded(t *testing.T) {
	got := Render("${CONTENT}", map[string]string{"CONTENT": "cost is $HOME and ${X}"})
	if got != "cost is $HOME and ${X}" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_NoEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-secret")
	got := Render("key=${OPENAI_API_KEY}", nil)
	if got != "key=" {
		t.Fatalf("environment leaked into prompt: %q", got)
	}
}

func TestRender_EscapedDollar(t *testing.T) {
	got := Render("costs $$5", nil)
	if got != "costs $5" {
		t.Fatalf("got %q", got)
	}
}

func TestDefaults_HaveNoStrayPlaceholders(t *testing.T) {
	s := Defaults()
	vars := map[string]string{
		"DIFF": "D", "DOC_PATH": "P", "CONTENT": "C", "DESCRIPTION": "",
		"TARGET_PATH": "T", "TARGET_CONTENT": "TC", "AMBIENT_CONTEXT": "A",
		"FORMAT_RULES": "F", "PATHS": "PS", "DOCUMENTS": "DS",
	}
	for name, tmpl := range map[string]string{
		"triage": s.Triage, "update": s.Update, "batch": s.Batch,
	} {
		out := Render(tmpl, vars)
		if strings.Contains(out, "${") {
			t.Fatalf("%s template left a placeholder: %s", name, out)
		}
	}
	if !strings.Contains(Render(s.Triage, vars), "Documentation File (P):\nC") {
		t.Fatal("triage template should embed the document path and content")
	}
}

func TestDefaults_UpdateForbidsDeprecationNotices(t *testing.T) {
	if !strings.Contains(Defaults().Update, "Do not leave deprecation notices") {
		t.Fatal("update template must require hard removal")
	}
}

func TestDescriptionSection(t *testing.T) {
	if DescriptionSection("  \n") != "" {
		t.Fatal("blank description should render nothing")
	}
	got := DescriptionSection("Add Frobnicate\n")
	if got != "\nPull Request Description:\nAdd Frobnicate\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatRules(t *testing.T) {
	if FormatRules("docs/api.md", false) != markdownRules {
		t.Fatal("markdown docs get markdown rules")
	}
	got := FormatRules("docs/sidebar.yml", true)
	if !strings.HasPrefix(got, configRules) || !strings.HasSuffix(got, "The file format is yml.") {
		t.Fatalf("got %q", got)
	}
}

func TestPathList(t *testing.T) {
	got := PathList([]string{"b.md", "a.md"})
	if got != "- a.md\n- b.md\n" {
		t.Fatalf("got %q", got)
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "triage.md"), []byte("custom ${DIFF}"), 0644)

	cfg := config.Default()
	cfg.Dir = dir
	cfg.Prompts.Triage = "triage.md"

	s, err := Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Triage != "custom ${DIFF}" {
		t.Fatalf("override not applied: %q", s.Triage)
	}
	if s.Update != defaultUpdate {
		t.Fatal("unset templates keep their defaults")
	}
}

func TestLoad_MissingOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Dir = t.TempDir()
	cfg.Prompts.Update = "nope.md"
	if _, err := Load(cfg); err == nil {
		t.Fatal("expected error for missing override")
	}
}
