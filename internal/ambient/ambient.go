// Package ambient renders the shared context block every update request sees.
package ambient

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/docsync/internal/budget"
	"github.com/jorge-barreto/docsync/internal/corpus"
)

// Build renders docs and truncates the result to max characters.
func Build(docs corpus.Corpus, max int) string {
	return budget.Truncate(Render(docs), max)
}

// Render concatenates the documents in path order, each introduced by a FILE
// marker.
func Render(docs corpus.Corpus) string {
	var buf strings.Builder
	for _, p := range docs.Paths() {
		fmt.Fprintf(&buf, "\n--- FILE: %s ---\n%s\n\n", p, docs[p])
	}
	return buf.String()
}
