package github

import (
	"context"
	"log/slog"

	gh "github.com/google/go-github/v66/github"

	"github.com/jorge-barreto/docsync/internal/publish"
	"github.com/jorge-barreto/docsync/internal/repo"
)

func (c *Client) DefaultBranch(ctx context.Context, r repo.Repo) (string, string, error) {
	info, _, err := c.gh.Repositories.Get(ctx, r.Owner, r.Name)
	if err != nil {
		return "", "", err
	}
	branch := info.GetDefaultBranch()
	ref, _, err := c.gh.Git.GetRef(ctx, r.Owner, r.Name, "heads/"+branch)
	if err != nil {
		return "", "", err
	}
	return branch, ref.GetObject().GetSHA(), nil
}

func (c *Client) BranchExists(ctx context.Context, r repo.Repo, branch string) (bool, error) {
	_, resp, err := c.gh.Git.GetRef(ctx, r.Owner, r.Name, "heads/"+branch)
	if isNotFound(resp, err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) CreateBranch(ctx context.Context, r repo.Repo, branch, sha string) error {
	_, _, err := c.gh.Git.CreateRef(ctx, r.Owner, r.Name, &gh.Reference{
		Ref:    gh.String("refs/heads/" + branch),
		Object: &gh.GitObject{SHA: gh.String(sha)},
	})
	return err
}

func (c *Client) FileSHA(ctx context.Context, r repo.Repo, branch, path string) (string, bool, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, r.Owner, r.Name, path,
		&gh.RepositoryContentGetOptions{Ref: branch})
	if isNotFound(resp, err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if file == nil {
		return "", false, nil
	}
	return file.GetSHA(), true, nil
}

func (c *Client) CreateFile(ctx context.Context, r repo.Repo, branch, path, message string, content []byte) error {
	_, _, err := c.gh.Repositories.CreateFile(ctx, r.Owner, r.Name, path, &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: content,
		Branch:  gh.String(branch),
	})
	return err
}

func (c *Client) UpdateFile(ctx context.Context, r repo.Repo, branch, path, message, sha string, content []byte) error {
	_, _, err := c.gh.Repositories.UpdateFile(ctx, r.Owner, r.Name, path, &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: content,
		SHA:     gh.String(sha),
		Branch:  gh.String(branch),
	})
	return err
}

func (c *Client) CreatePullRequest(ctx context.Context, r repo.Repo, pr publish.NewPullRequest) (string, int, error) {
	created, _, err := c.gh.PullRequests.Create(ctx, r.Owner, r.Name, &gh.NewPullRequest{
		Title: gh.String(pr.Title),
		Head:  gh.String(pr.Head),
		Base:  gh.String(pr.Base),
		Body:  gh.String(pr.Body),
		Draft: gh.Bool(pr.Draft),
	})
	if err != nil {
		return "", 0, err
	}
	slog.Debug("pull request opened", "repo", r.String(), "number", created.GetNumber())
	return created.GetHTMLURL(), created.GetNumber(), nil
}

func (c *Client) AddLabels(ctx context.Context, r repo.Repo, number int, labels []string) error {
	_, _, err := c.gh.Issues.AddLabelsToIssue(ctx, r.Owner, r.Name, number, labels)
	return err
}
