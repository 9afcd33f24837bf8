package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	defaultModel              = "gpt-4o"
	defaultBranchPrefix       = "doc-update-pr"
	defaultMaxDiffChars       = 40000
	defaultMaxDocContextChars = 50000
	defaultConcurrency        = 4
	defaultRemote             = "origin"
	defaultContextLines       = 20
	defaultInterHunkContext   = 15
)

var defaultInclude = []string{"**/*.md"}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BranchPrefix == "" {
		cfg.BranchPrefix = defaultBranchPrefix
	}
	if err := validateBranchPrefix(cfg.BranchPrefix); err != nil {
		return err
	}

	if cfg.MaxDiffChars == 0 {
		cfg.MaxDiffChars = defaultMaxDiffChars
	}
	if cfg.MaxDiffChars < 0 {
		return fmt.Errorf("config: 'max-diff-chars' must be > 0")
	}
	if cfg.MaxDocContextChars == 0 {
		cfg.MaxDocContextChars = defaultMaxDocContextChars
	}
	if cfg.MaxDocContextChars < 0 {
		return fmt.Errorf("config: 'max-doc-context-chars' must be > 0")
	}

	switch cfg.Strategy {
	case "":
		cfg.Strategy = StrategyPerFile
	case StrategyPerFile, StrategyBatched:
	default:
		return fmt.Errorf("config: unknown strategy %q (must be %s or %s)", cfg.Strategy, StrategyPerFile, StrategyBatched)
	}

	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("config: 'concurrency' must be >= 1")
	}
	if cfg.RequestsPerMinute < 0 {
		return fmt.Errorf("config: 'requests-per-minute' must be >= 0")
	}

	if cfg.Diff.Remote == "" {
		cfg.Diff.Remote = defaultRemote
	}
	if cfg.Diff.ContextLines == nil {
		n := defaultContextLines
		cfg.Diff.ContextLines = &n
	}
	if cfg.Diff.InterHunkContext == nil {
		n := defaultInterHunkContext
		cfg.Diff.InterHunkContext = &n
	}
	if *cfg.Diff.ContextLines < 0 || *cfg.Diff.InterHunkContext < 0 {
		return fmt.Errorf("config: diff context values must be >= 0")
	}

	if len(cfg.Include) == 0 {
		cfg.Include = append([]string(nil), defaultInclude...)
	}
	for _, p := range cfg.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("config: include: invalid pattern %q", p)
		}
	}
	for _, p := range cfg.ConfigFiles {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("config: config-files: invalid pattern %q", p)
		}
	}

	for name, p := range map[string]string{
		"triage-system": cfg.Prompts.TriageSystem,
		"triage":        cfg.Prompts.Triage,
		"update-system": cfg.Prompts.UpdateSystem,
		"update":        cfg.Prompts.Update,
		"batch":         cfg.Prompts.Batch,
	} {
		if p == "" {
			continue
		}
		path := cfg.PromptPath(p)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("config: prompts.%s: file %q not found", name, path)
		}
	}

	for _, l := range cfg.PullRequest.Labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("config: 'pull-request.labels' entries must be non-empty")
		}
	}
	return nil
}

func validateBranchPrefix(prefix string) error {
	if strings.ContainsAny(prefix, " ~^:?*[\\") || strings.Contains(prefix, "..") ||
		strings.HasPrefix(prefix, "-") || strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("config: 'branch-prefix' %q is not a valid git ref component", prefix)
	}
	return nil
}
