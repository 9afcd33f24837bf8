// Package pipeline runs one documentation sync from diff to pull request.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/docsync/internal/corpus"
	"github.com/jorge-barreto/docsync/internal/generate"
	"github.com/jorge-barreto/docsync/internal/gitdiff"
	"github.com/jorge-barreto/docsync/internal/publish"
	"github.com/jorge-barreto/docsync/internal/repo"
	"github.com/jorge-barreto/docsync/internal/state"
	"github.com/jorge-barreto/docsync/internal/triage"
	"github.com/jorge-barreto/docsync/internal/ux"
)

// Outcome is the terminal state of a run.
type Outcome string

const (
	NoDiff         Outcome = "no-diff"
	NoDocuments    Outcome = "no-documents"
	NoUpdateNeeded Outcome = "no-update-needed"
	NoChanges      Outcome = "no-changes"
	DryRun         Outcome = "dry-run"
	Published      Outcome = "published"
	Failed         Outcome = "failed"
)

var stages = []struct{ name, desc string }{
	{"diff", "resolve the source change"},
	{"corpus", "load documentation"},
	{"triage", "decide which documents need updates"},
	{"generate", "write replacement content"},
	{"publish", "open a pull request"},
}

// DiffResolver computes the source change for a pull request.
type DiffResolver interface {
	Resolve(ctx context.Context, source repo.Repo, number int) (*gitdiff.Result, error)
}

// Request names the source change and the documentation to sync.
type Request struct {
	SourceRepo repo.Repo
	SourcePR   int
	DocRepo    repo.Repo
	DocPath    string
}

// Report describes how a run ended.
type Report struct {
	Outcome Outcome
	RunID   string
	Base    string
	Flagged []string
	Updated []string
	Branch  string
	URL     string
}

// Message is the one-line status printed when the run ends.
func (r *Report) Message() string {
	switch r.Outcome {
	case NoDiff:
		return fmt.Sprintf("No changes detected against %s. Nothing to do.", r.Base)
	case NoDocuments:
		return "No documentation files found. Nothing to do."
	case NoUpdateNeeded:
		return "No documentation updates needed."
	case NoChanges:
		return "Generated content matches the current documentation. Nothing to publish."
	case DryRun:
		return fmt.Sprintf("Dry run complete: %d file(s) would be updated on %s.", len(r.Updated), r.Branch)
	case Published:
		return "Created pull request: " + r.URL
	}
	return string(r.Outcome)
}

// Pipeline drives the stages in order. Each stage either hands data to the
// next or ends the run with a no-op outcome.
type Pipeline struct {
	Diff      DiffResolver
	Corpus    *corpus.Loader
	Triage    *triage.Engine
	Generator generate.Generator
	Publisher *publish.Publisher

	DryRun bool
	// ArtifactsDir, when set, receives timing.json, run.json and updates/.
	ArtifactsDir string
	RunID        string

	timing *state.Timing
}

// Run executes one sync. A non-nil error is always fatal; every "nothing to
// do" state returns a Report with a nil error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}
	if p.ArtifactsDir != "" {
		if err := state.EnsureDir(p.ArtifactsDir); err != nil {
			return nil, err
		}
	}
	p.timing = &state.Timing{}
	summary := &state.Summary{
		RunID:      p.RunID,
		SourceRepo: req.SourceRepo.String(),
		SourcePR:   req.SourcePR,
		DocRepo:    req.DocRepo.String(),
	}

	report, err := p.run(ctx, req, summary)
	if err != nil {
		summary.Outcome = string(Failed)
		summary.Error = err.Error()
	} else {
		summary.Outcome = string(report.Outcome)
		summary.Branch = report.Branch
		summary.PullRequest = report.URL
	}
	p.finish(summary)
	return report, err
}

func (p *Pipeline) run(ctx context.Context, req Request, summary *state.Summary) (*Report, error) {
	report := &Report{RunID: p.RunID}

	var diff *gitdiff.Result
	err := p.stage(ctx, 0, func() (string, error) {
		var err error
		diff, err = p.Diff.Resolve(ctx, req.SourceRepo, req.SourcePR)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s against %s", diff.Stats, diff.Base), nil
	})
	if err != nil {
		return nil, err
	}
	report.Base = diff.Base
	summary.DiffChars = len([]rune(diff.Text))
	if diff.Empty() {
		return p.end(report, NoDiff), nil
	}

	var docs corpus.Corpus
	err = p.stage(ctx, 1, func() (string, error) {
		var err error
		docs, err = p.Corpus.Load(ctx, req.DocRepo, req.DocPath)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d document(s) under %s", len(docs), req.DocPath), nil
	})
	if err != nil {
		return nil, err
	}
	summary.Documents = len(docs)
	if len(docs) == 0 {
		return p.end(report, NoDocuments), nil
	}

	err = p.stage(ctx, 2, func() (string, error) {
		var err error
		report.Flagged, err = p.Triage.Run(ctx, diff.Text, diff.Description, docs)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d of %d flagged", len(report.Flagged), len(docs)), nil
	})
	if err != nil {
		return nil, err
	}
	summary.Flagged = report.Flagged
	if len(report.Flagged) == 0 {
		return p.end(report, NoUpdateNeeded), nil
	}

	var changes generate.Result
	err = p.stage(ctx, 3, func() (string, error) {
		var err error
		changes, err = p.Generator.Generate(ctx, generate.Input{
			Diff:         diff.Text,
			Description:  diff.Description,
			Targets:      docs.Subset(report.Flagged),
			IsConfigFile: p.Corpus.Matcher.IsConfigFile,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d of %d changed", len(changes), len(report.Flagged)), nil
	})
	if err != nil {
		return nil, err
	}
	report.Updated = corpus.Corpus(changes).Paths()
	summary.Updated = report.Updated
	if p.ArtifactsDir != "" {
		if err := state.WriteUpdates(p.ArtifactsDir, changes); err != nil {
			ux.Warn("failed to save generated updates: %v", err)
		}
	}
	if len(changes) == 0 {
		return p.end(report, NoChanges), nil
	}

	pub := publish.Request{
		DocRepo:    req.DocRepo,
		SourceRepo: req.SourceRepo,
		SourcePR:   req.SourcePR,
		Changes:    changes,
		RunID:      p.RunID,
		Stats:      diff.Stats.String(),
	}
	var res *publish.Result
	err = p.stage(ctx, 4, func() (string, error) {
		var err error
		if p.DryRun {
			res, err = p.Publisher.Plan(ctx, pub)
		} else {
			res, err = p.Publisher.Publish(ctx, pub)
		}
		if err != nil {
			return "", err
		}
		return res.Branch, nil
	})
	if err != nil {
		return nil, err
	}
	report.Branch = res.Branch
	report.URL = res.URL
	if p.DryRun {
		return p.end(report, DryRun), nil
	}
	return p.end(report, Published), nil
}

func (p *Pipeline) end(r *Report, o Outcome) *Report {
	r.Outcome = o
	return r
}

// stage runs fn between a stage header and its completion or failure line.
func (p *Pipeline) stage(ctx context.Context, i int, fn func() (string, error)) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s := stages[i]
	ux.StageHeader(i, len(stages), s.name, s.desc)
	p.timing.AddStart(s.name)
	start := time.Now()

	detail, err := fn()
	p.timing.AddEnd(s.name)
	if err != nil {
		ux.StageFail(i, s.name, err.Error())
		return fmt.Errorf("%s: %w", s.name, err)
	}
	ux.StageComplete(i, time.Since(start), detail)
	return nil
}

// finish writes the run record when an artifacts directory is configured.
func (p *Pipeline) finish(summary *state.Summary) {
	if p.ArtifactsDir == "" {
		return
	}
	summary.DurationMS = p.timing.Total().Milliseconds()
	summary.FinishedAt = time.Now()
	if err := summary.Save(p.ArtifactsDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save run summary: %v\n", err)
	}
	if err := p.timing.Flush(p.ArtifactsDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to flush timing: %v\n", err)
	}
}
