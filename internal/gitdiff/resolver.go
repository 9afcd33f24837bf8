// Package gitdiff produces the unified diff between a pull request checkout
// and its base branch.
package gitdiff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jorge-barreto/docsync/internal/repo"
)

// ErrNotARepository is returned when the local path has no .git entry.
var ErrNotARepository = errors.New("not a git repository")

// PullRequest is the subset of source PR metadata the pipeline uses.
type PullRequest struct {
	Base  string
	Title string
	Body  string
}

// Description joins title and body into the optional change description.
func (p *PullRequest) Description() string {
	return strings.TrimSpace(strings.TrimSpace(p.Title) + "\n\n" + strings.TrimSpace(p.Body))
}

// PRResolver looks up a pull request on the hosting service.
type PRResolver interface {
	PullRequest(ctx context.Context, r repo.Repo, number int) (*PullRequest, error)
}

// Options controls how much surrounding context git includes.
type Options struct {
	Remote           string
	ContextLines     int
	InterHunkContext int
	FunctionContext  bool
}

// Resolver computes the diff of the local checkout against the PR's base branch.
type Resolver struct {
	PRs      PRResolver
	Git      Git
	RepoPath string
	Options  Options
}

// Result is the diff plus the metadata gathered while computing it.
type Result struct {
	Text        string
	Base        string
	Description string
	Stats       Stats
}

// Empty reports whether the diff has no content besides whitespace.
func (r *Result) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// CheckRepo verifies that path is a git working tree.
func CheckRepo(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotARepository)
	}
	// .git is a directory in clones and a file in worktrees and submodules.
	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		return fmt.Errorf("%s: %w", path, ErrNotARepository)
	}
	return nil
}

// Resolve fetches the PR's base branch and diffs the checkout against it.
func (r *Resolver) Resolve(ctx context.Context, source repo.Repo, number int) (*Result, error) {
	if err := CheckRepo(r.RepoPath); err != nil {
		return nil, err
	}

	pr, err := r.PRs.PullRequest(ctx, source, number)
	if err != nil {
		return nil, fmt.Errorf("resolving %s#%d: %w", source, number, err)
	}
	if pr.Base == "" {
		return nil, fmt.Errorf("resolving %s#%d: pull request has no base branch", source, number)
	}
	slog.Debug("resolved base branch", "repo", source.String(), "pr", number, "base", pr.Base)

	remote := r.Options.Remote
	if _, err := r.Git.Run(ctx, r.RepoPath, "fetch", remote, pr.Base); err != nil {
		return nil, fmt.Errorf("fetching base branch %s: %w", pr.Base, err)
	}

	text, err := r.Git.Run(ctx, r.RepoPath, r.diffArgs(remote+"/"+pr.Base)...)
	if err != nil {
		return nil, fmt.Errorf("generating diff against %s/%s: %w", remote, pr.Base, err)
	}

	return &Result{
		Text:        text,
		Base:        pr.Base,
		Description: pr.Description(),
		Stats:       ComputeStats(text),
	}, nil
}

func (r *Resolver) diffArgs(base string) []string {
	args := []string{"diff", base}
	if r.Options.FunctionContext {
		args = append(args, "-W")
	}
	args = append(args,
		"-U"+strconv.Itoa(r.Options.ContextLines),
		"--inter-hunk-context="+strconv.Itoa(r.Options.InterHunkContext),
		"--", ".",
	)
	return args
}
