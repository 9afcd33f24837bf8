// Package github adapts the GitHub REST API to the pull-request resolver,
// corpus reader and publication mutator interfaces.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/jorge-barreto/docsync/internal/corpus"
	"github.com/jorge-barreto/docsync/internal/gitdiff"
	"github.com/jorge-barreto/docsync/internal/publish"
	"github.com/jorge-barreto/docsync/internal/repo"
)

// Client talks to one GitHub API endpoint with one token.
type Client struct {
	gh *gh.Client
}

var (
	_ gitdiff.PRResolver = (*Client)(nil)
	_ corpus.Reader      = (*Client)(nil)
	_ publish.Mutator    = (*Client)(nil)
)

// New returns a client authenticated with token.
func New(token string) *Client {
	return &Client{gh: gh.NewClient(nil).WithAuthToken(token)}
}

func isNotFound(resp *gh.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *gh.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// PullRequest returns the base branch, title and body of a pull request.
func (c *Client) PullRequest(ctx context.Context, r repo.Repo, number int) (*gitdiff.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, r.Owner, r.Name, number)
	if err != nil {
		return nil, err
	}
	slog.Debug("pull request resolved", "repo", r.String(), "number", number, "base", pr.GetBase().GetRef())
	return &gitdiff.PullRequest{
		Base:  pr.GetBase().GetRef(),
		Title: pr.GetTitle(),
		Body:  pr.GetBody(),
	}, nil
}

// List returns the entries of the directory at path, or the file itself when
// path names a file. Symlinks and submodules are not followed.
func (c *Client) List(ctx context.Context, r repo.Repo, path string) ([]corpus.Entry, error) {
	file, dir, _, err := c.gh.Repositories.GetContents(ctx, r.Owner, r.Name, path, nil)
	if err != nil {
		return nil, err
	}
	if file != nil {
		return []corpus.Entry{{Path: file.GetPath()}}, nil
	}
	entries := make([]corpus.Entry, 0, len(dir))
	for _, e := range dir {
		switch e.GetType() {
		case "dir":
			entries = append(entries, corpus.Entry{Path: e.GetPath(), Dir: true})
		case "file":
			entries = append(entries, corpus.Entry{Path: e.GetPath()})
		}
	}
	return entries, nil
}

// Read returns the raw bytes of a file on the default branch.
func (c *Client) Read(ctx context.Context, r repo.Repo, path string) ([]byte, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, r.Owner, r.Name, path, nil)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	// Files over 1MB come back without inline content.
	if file.GetEncoding() == "none" || (file.Content == nil && file.GetSize() > 0) {
		rc, _, err := c.gh.Repositories.DownloadContents(ctx, r.Owner, r.Name, path, nil)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return []byte(content), nil
}
