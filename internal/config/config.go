package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	StrategyPerFile = "per-file"
	StrategyBatched = "batched"
)

// DefaultFileName is looked up in the source checkout when --config is not given.
const DefaultFileName = ".docsync.yaml"

// Diff tunes git diff. Nil pointers are unset; Validate fills the defaults,
// so an explicit 0 is kept.
type Diff struct {
	Remote           string `yaml:"remote"`
	ContextLines     *int   `yaml:"context-lines"`
	InterHunkContext *int   `yaml:"inter-hunk-context"`
	FunctionContext  *bool  `yaml:"function-context"`
}

// Prompts holds optional template override files, relative to the config file.
type Prompts struct {
	TriageSystem string `yaml:"triage-system"`
	Triage       string `yaml:"triage"`
	UpdateSystem string `yaml:"update-system"`
	Update       string `yaml:"update"`
	Batch        string `yaml:"batch"`
}

type PullRequest struct {
	Draft  bool     `yaml:"draft"`
	Labels []string `yaml:"labels"`
}

type Config struct {
	Model              string      `yaml:"model"`
	BaseURL            string      `yaml:"base-url"`
	BranchPrefix       string      `yaml:"branch-prefix"`
	MaxDiffChars       int         `yaml:"max-diff-chars"`
	MaxDocContextChars int         `yaml:"max-doc-context-chars"`
	Strategy           string      `yaml:"strategy"`
	Concurrency        int         `yaml:"concurrency"`
	RequestsPerMinute  int         `yaml:"requests-per-minute"`
	Diff               Diff        `yaml:"diff"`
	Include            []string    `yaml:"include"`
	ConfigFiles        []string    `yaml:"config-files"`
	Prompts            Prompts     `yaml:"prompts"`
	PullRequest        PullRequest `yaml:"pull-request"`

	// Dir is the directory prompt overrides are resolved against.
	Dir string `yaml:"-"`
}

// Default returns a validated config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = Validate(cfg)
	return cfg
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve loads the explicit config path when given. Otherwise it looks for
// DefaultFileName in repoPath and falls back to defaults when absent.
func Resolve(explicit, repoPath string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	cfg, err := Load(filepath.Join(repoPath, DefaultFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv lets the model name and base URL be overridden from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("OPENAI_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("OPENAI_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

// FunctionContext reports whether git diff should widen hunks to whole functions.
func (c *Config) FunctionContext() bool {
	return c.Diff.FunctionContext == nil || *c.Diff.FunctionContext
}

// ContextLines is the git diff -U value.
func (c *Config) ContextLines() int {
	if c.Diff.ContextLines == nil {
		return defaultContextLines
	}
	return *c.Diff.ContextLines
}

// InterHunkContext is the git diff --inter-hunk-context value.
func (c *Config) InterHunkContext() int {
	if c.Diff.InterHunkContext == nil {
		return defaultInterHunkContext
	}
	return *c.Diff.InterHunkContext
}

// PromptPath returns an override path resolved against the config directory.
func (c *Config) PromptPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}
