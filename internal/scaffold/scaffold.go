package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/docsync/internal/config"
	"github.com/jorge-barreto/docsync/internal/prompts"
	"github.com/jorge-barreto/docsync/internal/ux"
)

// PromptsDir holds editable copies of the built-in templates, relative to the config file.
const PromptsDir = ".docsync/prompts"

var configTemplate = `# docsync configuration. Every field is optional.
model: gpt-4o
branch-prefix: doc-update-pr

# Character budgets for text sent to the model (prefix kept, tail dropped).
max-diff-chars: 40000
max-doc-context-chars: 50000

# per-file: one update call per flagged document.
# batched: one call returning a JSON mapping of path to content.
strategy: per-file
concurrency: 4
requests-per-minute: 0

diff:
  remote: origin
  context-lines: 20
  inter-hunk-context: 15
  function-context: true

include:
  - "**/*.md"
# Structured navigation/sidebar files to sync alongside markdown.
config-files: []

pull-request:
  draft: false
  labels: []
`

var promptsBlock = `
prompts:
  triage-system: ` + PromptsDir + `/triage-system.md
  triage: ` + PromptsDir + `/triage.md
  update-system: ` + PromptsDir + `/update-system.md
  update: ` + PromptsDir + `/update.md
  batch: ` + PromptsDir + `/batch.md
`

// Init writes a starter config into targetDir. With withPrompts it also
// writes the built-in prompt templates and points the config at them.
func Init(targetDir string, withPrompts bool) error {
	configPath := filepath.Join(targetDir, config.DefaultFileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.DefaultFileName, targetDir)
	}

	content := configTemplate
	if withPrompts {
		if err := writePrompts(filepath.Join(targetDir, filepath.FromSlash(PromptsDir))); err != nil {
			return err
		}
		content += promptsBlock
	}
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultFileName, err)
	}

	fmt.Printf("\n%s%s✓ Initialized docsync%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Printf("  Created:\n")
	fmt.Printf("    %s%s%s    — run configuration\n", ux.Cyan, config.DefaultFileName, ux.Reset)
	if withPrompts {
		fmt.Printf("    %s%s/%s — editable prompt templates\n", ux.Cyan, PromptsDir, ux.Reset)
	}
	fmt.Printf("\n  Next steps:\n")
	fmt.Printf("    1. Export %sGH_TOKEN%s and %sOPENAI_API_KEY%s\n", ux.Cyan, ux.Reset, ux.Cyan, ux.Reset)
	fmt.Printf("    2. Run %sdocsync run --source-pr <n> --source-repo <owner/name> --doc-repo <owner/name> --doc-path docs --dry-run%s\n\n", ux.Cyan, ux.Reset)
	return nil
}

func writePrompts(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", PromptsDir, err)
	}
	set := prompts.Defaults()
	for name, body := range map[string]string{
		"triage-system.md": set.TriageSystem,
		"triage.md":        set.Triage,
		"update-system.md": set.UpdateSystem,
		"update.md":        set.Update,
		"batch.md":         set.Batch,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
