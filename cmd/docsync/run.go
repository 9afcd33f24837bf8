package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jorge-barreto/docsync/internal/config"
	"github.com/jorge-barreto/docsync/internal/corpus"
	"github.com/jorge-barreto/docsync/internal/generate"
	"github.com/jorge-barreto/docsync/internal/github"
	"github.com/jorge-barreto/docsync/internal/gitdiff"
	"github.com/jorge-barreto/docsync/internal/llm"
	"github.com/jorge-barreto/docsync/internal/pipeline"
	"github.com/jorge-barreto/docsync/internal/prompts"
	"github.com/jorge-barreto/docsync/internal/publish"
	"github.com/jorge-barreto/docsync/internal/repo"
	"github.com/jorge-barreto/docsync/internal/state"
	"github.com/jorge-barreto/docsync/internal/triage"
	"github.com/jorge-barreto/docsync/internal/ux"
)

type runOptions struct {
	SourcePR     int
	SourceRepo   string
	DocRepo      string
	DocPath      string
	RepoPath     string
	ConfigPath   string
	Strategy     string
	DryRun       bool
	ArtifactsDir string
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// run validates inputs in the order secrets, identifiers, checkout, config,
// then wires the collaborators and executes the pipeline.
func run(ctx context.Context, opts runOptions, getenv func(string) string) (*pipeline.Report, error) {
	secrets, err := config.LoadSecrets(getenv)
	if err != nil {
		return nil, err
	}
	if opts.SourcePR <= 0 {
		return nil, fmt.Errorf("--source-pr must be a positive number")
	}
	source, err := repo.Parse(opts.SourceRepo)
	if err != nil {
		return nil, fmt.Errorf("--source-repo: %w", err)
	}
	docRepo, err := repo.Parse(opts.DocRepo)
	if err != nil {
		return nil, fmt.Errorf("--doc-repo: %w", err)
	}
	if err := gitdiff.CheckRepo(opts.RepoPath); err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(opts.ConfigPath, opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(getenv)
	if opts.Strategy != "" {
		cfg.Strategy = opts.Strategy
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	set, err := prompts.Load(cfg)
	if err != nil {
		return nil, err
	}
	if err := gitdiff.Preflight(); err != nil {
		return nil, err
	}
	slog.Debug("configuration resolved", "model", cfg.Model, "strategy", cfg.Strategy,
		"github_token_present", secrets.GitHubToken != "", "model_key_present", secrets.ModelAPIKey != "")

	var provider llm.Provider = llm.Limited(llm.NewOpenAI(secrets.ModelAPIKey, cfg.BaseURL, cfg.Model), cfg.RequestsPerMinute)
	if opts.ArtifactsDir != "" {
		if err := state.EnsureDir(opts.ArtifactsDir); err != nil {
			return nil, err
		}
		provider = state.NewRecorder(provider, opts.ArtifactsDir)
	}

	gh := github.New(secrets.GitHubToken)
	p := &pipeline.Pipeline{
		Diff: &gitdiff.Resolver{
			PRs:      gh,
			Git:      gitdiff.ExecGit{},
			RepoPath: opts.RepoPath,
			Options: gitdiff.Options{
				Remote:           cfg.Diff.Remote,
				ContextLines:     cfg.ContextLines(),
				InterHunkContext: cfg.InterHunkContext(),
				FunctionContext:  cfg.FunctionContext(),
			},
		},
		Corpus: &corpus.Loader{
			Reader:  gh,
			Matcher: corpus.NewMatcher(cfg.Include, cfg.ConfigFiles),
			Warn:    ux.Warn,
		},
		Triage:    triage.New(provider, cfg, set),
		Generator: generate.New(cfg, provider, set),
		Publisher: &publish.Publisher{
			Mutator: gh,
			Prefix:  cfg.BranchPrefix,
			Draft:   cfg.PullRequest.Draft,
			Labels:  cfg.PullRequest.Labels,
		},
		DryRun:       opts.DryRun,
		ArtifactsDir: opts.ArtifactsDir,
	}

	return p.Run(ctx, pipeline.Request{
		SourceRepo: source,
		SourcePR:   opts.SourcePR,
		DocRepo:    docRepo,
		DocPath:    opts.DocPath,
	})
}
