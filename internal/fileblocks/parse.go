// Package fileblocks extracts file content from fenced model output.
package fileblocks

import (
	"regexp"
	"strings"
)

// FileBlock is one file extracted from a model response.
type FileBlock struct {
	Path    string // e.g. "docs/api.md"
	Content string // content between the fences
}

var (
	fenceOpenRe = regexp.MustCompile("^(`{3,}|~{3,})[\\w-]*\\s*file=(\\S+)")
	fenceLineRe = regexp.MustCompile("^(`{3,}|~{3,})[\\w-]*\\s*$")
)

// Parse extracts fenced blocks annotated with file= from text.
// It recognizes opening fences like:
//
//	```markdown file=docs/api.md
//	````file=docs/guide.md
//	~~~yaml file=docs/.vitepress/sidebar.yml
//
// A block closes on a line holding exactly its opening fence, so a four-backtick
// block may carry markdown with ordinary ``` code fences inside.
// Returns blocks in order of appearance; unclosed blocks are dropped.
func Parse(text string) []FileBlock {
	lines := strings.Split(text, "\n")
	var blocks []FileBlock
	var current *FileBlock
	var fence string
	var buf strings.Builder

	for _, line := range lines {
		if current != nil {
			if strings.TrimSpace(line) == fence {
				current.Content = buf.String()
				blocks = append(blocks, *current)
				current = nil
				buf.Reset()
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(line)
			continue
		}

		m := fenceOpenRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			current = &FileBlock{Path: m[2]}
			fence = m[1]
			buf.Reset()
		}
	}

	return blocks
}

// Unwrap strips a single code fence that encloses the whole response, as
// models often add around file content. Text that is not fully enclosed is
// returned unchanged.
func Unwrap(text string) string {
	trimmed := strings.TrimSpace(text)
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return text
	}
	m := fenceLineRe.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if m == nil || strings.TrimSpace(lines[len(lines)-1]) != m[1] {
		return text
	}
	inner := lines[1 : len(lines)-1]
	for _, l := range inner {
		// the opening fence closes early, so first and last are separate blocks
		if strings.TrimSpace(l) == m[1] {
			return text
		}
	}
	return strings.Join(inner, "\n")
}
