// Package publish writes accepted changes to a new branch of the
// documentation repository and opens a pull request for them.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jorge-barreto/docsync/internal/repo"
	"github.com/jorge-barreto/docsync/internal/ux"
)

// maxBranchAttempts bounds the collision probe, including the plain name.
const maxBranchAttempts = 10

// NewPullRequest describes the pull request to open.
type NewPullRequest struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// Mutator is the subset of the hosting API the publisher needs.
type Mutator interface {
	// DefaultBranch returns the default branch name and its tip commit.
	DefaultBranch(ctx context.Context, r repo.Repo) (name, sha string, err error)
	BranchExists(ctx context.Context, r repo.Repo, branch string) (bool, error)
	CreateBranch(ctx context.Context, r repo.Repo, branch, sha string) error
	// FileSHA returns the blob identity of path on branch. found is false,
	// with a nil error, when the file does not exist.
	FileSHA(ctx context.Context, r repo.Repo, branch, path string) (sha string, found bool, err error)
	CreateFile(ctx context.Context, r repo.Repo, branch, path, message string, content []byte) error
	UpdateFile(ctx context.Context, r repo.Repo, branch, path, message, sha string, content []byte) error
	CreatePullRequest(ctx context.Context, r repo.Repo, pr NewPullRequest) (url string, number int, err error)
	AddLabels(ctx context.Context, r repo.Repo, number int, labels []string) error
}

// Request is one publication.
type Request struct {
	DocRepo    repo.Repo
	SourceRepo repo.Repo
	SourcePR   int
	// Changes maps document path to accepted new content.
	Changes map[string]string
	RunID   string
	// Stats is an optional one-line diff summary for the PR body.
	Stats string
}

func (r Request) paths() []string {
	paths := make([]string, 0, len(r.Changes))
	for p := range r.Changes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Result describes a completed or planned publication.
type Result struct {
	Branch string
	Base   string
	URL    string
	Number int
}

// Publisher creates the branch, commits each file, and opens the pull request.
type Publisher struct {
	Mutator Mutator
	Prefix  string
	Draft   bool
	Labels  []string
	// Now supplies the collision suffix. Defaults to time.Now.
	Now func() time.Time
}

// BranchName is the deterministic candidate name for a source pull request.
func BranchName(prefix string, source repo.Repo, pr int) string {
	return fmt.Sprintf("%s-%s-%d", prefix, source, pr)
}

// Publish performs the full publication. Errors after the branch exists name
// the branch so it can be inspected or deleted; nothing is retried.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	base, sha, err := p.Mutator.DefaultBranch(ctx, req.DocRepo)
	if err != nil {
		return nil, fmt.Errorf("resolving default branch of %s: %w", req.DocRepo, err)
	}
	branch, err := p.freeBranch(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := p.Mutator.CreateBranch(ctx, req.DocRepo, branch, sha); err != nil {
		return nil, fmt.Errorf("creating branch %s: %w", branch, err)
	}
	ux.Item("branch %s created from %s", branch, base)

	for _, path := range req.paths() {
		if err := p.writeFile(ctx, req, branch, path); err != nil {
			return nil, fmt.Errorf("branch %s left partially applied: %w", branch, err)
		}
	}

	url, number, err := p.Mutator.CreatePullRequest(ctx, req.DocRepo, NewPullRequest{
		Title: Title(req.SourceRepo, req.SourcePR),
		Body:  Body(req),
		Head:  branch,
		Base:  base,
		Draft: p.Draft,
	})
	if err != nil {
		return nil, fmt.Errorf("opening pull request from %s: %w", branch, err)
	}
	if len(p.Labels) > 0 {
		if err := p.Mutator.AddLabels(ctx, req.DocRepo, number, p.Labels); err != nil {
			return nil, fmt.Errorf("labelling pull request %s: %w", url, err)
		}
	}
	return &Result{Branch: branch, Base: base, URL: url, Number: number}, nil
}

// Plan resolves what Publish would do without writing anything, and prints it.
func (p *Publisher) Plan(ctx context.Context, req Request) (*Result, error) {
	base, _, err := p.Mutator.DefaultBranch(ctx, req.DocRepo)
	if err != nil {
		return nil, fmt.Errorf("resolving default branch of %s: %w", req.DocRepo, err)
	}
	branch, err := p.freeBranch(ctx, req)
	if err != nil {
		return nil, err
	}
	ux.RenderPlan(req.DocRepo.String(), branch, base, req.Changes)
	return &Result{Branch: branch, Base: base}, nil
}

// freeBranch returns the candidate name, or the first free timestamped variant.
func (p *Publisher) freeBranch(ctx context.Context, req Request) (string, error) {
	candidate := BranchName(p.Prefix, req.SourceRepo, req.SourcePR)
	now := p.Now
	if now == nil {
		now = time.Now
	}
	stamped := fmt.Sprintf("%s-%d", candidate, now().Unix())

	name := candidate
	for attempt := 1; attempt <= maxBranchAttempts; attempt++ {
		exists, err := p.Mutator.BranchExists(ctx, req.DocRepo, name)
		if err != nil {
			return "", fmt.Errorf("checking branch %s: %w", name, err)
		}
		if !exists {
			return name, nil
		}
		slog.Debug("branch exists", "branch", name)
		if attempt == 1 {
			name = stamped
		} else {
			name = fmt.Sprintf("%s-%d", stamped, attempt)
		}
	}
	return "", fmt.Errorf("no free branch name for %s after %d attempts", candidate, maxBranchAttempts)
}

func (p *Publisher) writeFile(ctx context.Context, req Request, branch, path string) error {
	content := []byte(req.Changes[path])
	sha, found, err := p.Mutator.FileSHA(ctx, req.DocRepo, branch, path)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", path, err)
	}
	if found {
		if err := p.Mutator.UpdateFile(ctx, req.DocRepo, branch, path, commitMessage("Update", path, req.RunID), sha, content); err != nil {
			return fmt.Errorf("updating %s: %w", path, err)
		}
		ux.Item("updated %s", path)
		return nil
	}
	if err := p.Mutator.CreateFile(ctx, req.DocRepo, branch, path, commitMessage("Create", path, req.RunID), content); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	ux.Item("created %s", path)
	return nil
}

func commitMessage(verb, path, runID string) string {
	msg := fmt.Sprintf("%s %s", verb, path)
	if runID != "" {
		msg += "\n\ndocsync run " + runID
	}
	return msg
}

// Title is the pull request title for a source pull request.
func Title(source repo.Repo, pr int) string {
	return fmt.Sprintf("Docs Update for %s #%d", source, pr)
}

// Body is the pull request description.
func Body(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Automated documentation update triggered by changes in %s PR #%d.\n", req.SourceRepo, req.SourcePR)
	if req.Stats != "" {
		fmt.Fprintf(&b, "\nSource diff: %s\n", req.Stats)
	}
	b.WriteString("\nChanged files:\n")
	for _, p := range req.paths() {
		fmt.Fprintf(&b, "- `%s`\n", p)
	}
	if req.RunID != "" {
		fmt.Fprintf(&b, "\nRun ID: `%s`\n", req.RunID)
	}
	return b.String()
}
