// Package corpus collects documentation files from the documentation repository.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"unicode/utf8"

	"github.com/jorge-barreto/docsync/internal/repo"
)

// Corpus maps a document path to its current content.
type Corpus map[string]string

// Paths returns the document paths in sorted order.
func (c Corpus) Paths() []string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Subset returns the documents named in paths. Unknown paths are ignored.
func (c Corpus) Subset(paths []string) Corpus {
	sub := make(Corpus, len(paths))
	for _, p := range paths {
		if content, ok := c[p]; ok {
			sub[p] = content
		}
	}
	return sub
}

// Entry is one item of a directory listing.
type Entry struct {
	Path string
	Dir  bool
}

// Reader lists and reads files in a hosted repository.
// Listing a file path returns that single file.
type Reader interface {
	List(ctx context.Context, r repo.Repo, path string) ([]Entry, error)
	Read(ctx context.Context, r repo.Repo, path string) ([]byte, error)
}

// Loader walks a documentation tree and decodes the selected files.
type Loader struct {
	Reader  Reader
	Matcher *Matcher
	// Warn reports skipped files. Defaults to slog.Warn.
	Warn func(format string, args ...any)
}

// Load collects every selected file under root, breadth-first.
func (l *Loader) Load(ctx context.Context, r repo.Repo, root string) (Corpus, error) {
	warn := l.Warn
	if warn == nil {
		warn = func(format string, args ...any) { slog.Warn(fmt.Sprintf(format, args...)) }
	}

	entries, err := l.Reader.List(ctx, r, root)
	if err != nil {
		return nil, fmt.Errorf("accessing path %q in %s: %w", root, r, err)
	}

	docs := make(Corpus)
	queue := entries
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if e.Dir {
			children, err := l.Reader.List(ctx, r, e.Path)
			if err != nil {
				return nil, fmt.Errorf("listing %q in %s: %w", e.Path, r, err)
			}
			queue = append(queue, children...)
			continue
		}
		if !l.Matcher.Match(e.Path) {
			continue
		}

		data, err := l.Reader.Read(ctx, r, e.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %q in %s: %w", e.Path, r, err)
		}
		if !utf8.Valid(data) {
			warn("skipping %s: content is not valid UTF-8", e.Path)
			continue
		}
		docs[e.Path] = string(data)
	}
	return docs, nil
}
