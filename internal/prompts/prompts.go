// Package prompts renders the triage and update prompts.
//
// Templates use ${NAME} placeholders. Values are substituted verbatim, so
// diffs and documents containing "$" are safe; a literal "$" in a custom
// template must be written as "$$".
package prompts

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jorge-barreto/docsync/internal/config"
)

// Set is one complete collection of prompt templates.
type Set struct {
	TriageSystem string
	Triage       string
	UpdateSystem string
	Update       string
	Batch        string
}

// Defaults returns the built-in templates.
func Defaults() Set {
	return Set{
		TriageSystem: defaultTriageSystem,
		Triage:       defaultTriage,
		UpdateSystem: defaultUpdateSystem,
		Update:       defaultUpdate,
		Batch:        defaultBatch,
	}
}

// Load returns the defaults with any override files from cfg applied.
func Load(cfg *config.Config) (Set, error) {
	s := Defaults()
	for _, o := range []struct {
		file string
		dst  *string
	}{
		{cfg.Prompts.TriageSystem, &s.TriageSystem},
		{cfg.Prompts.Triage, &s.Triage},
		{cfg.Prompts.UpdateSystem, &s.UpdateSystem},
		{cfg.Prompts.Update, &s.Update},
		{cfg.Prompts.Batch, &s.Batch},
	} {
		if o.file == "" {
			continue
		}
		data, err := os.ReadFile(cfg.PromptPath(o.file))
		if err != nil {
			return Set{}, fmt.Errorf("loading prompt override: %w", err)
		}
		*o.dst = string(data)
	}
	return s, nil
}

// Render substitutes ${NAME} placeholders from vars. Unknown names expand to "".
func Render(template string, vars map[string]string) string {
	return os.Expand(template, func(key string) string {
		if key == "$" {
			return "$"
		}
		return vars[key]
	})
}

// DescriptionSection formats the optional human-written change description.
func DescriptionSection(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	return "\nPull Request Description:\n" + desc + "\n"
}

// FormatRules returns format-specific preservation rules for a document.
func FormatRules(docPath string, configFile bool) string {
	if configFile {
		ext := strings.TrimPrefix(path.Ext(docPath), ".")
		if ext == "" {
			return configRules
		}
		return configRules + "\n- The file format is " + ext + "."
	}
	return markdownRules
}

// PathList renders paths one per line as a bullet list.
func PathList(paths []string) string {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	var b strings.Builder
	for _, p := range sorted {
		b.WriteString("- " + p + "\n")
	}
	return b.String()
}
