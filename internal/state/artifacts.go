package state

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// EnsureDir creates the artifacts directory structure.
func EnsureDir(artifactsDir string) error {
	dirs := []string{
		artifactsDir,
		filepath.Join(artifactsDir, "prompts"),
		filepath.Join(artifactsDir, "responses"),
		filepath.Join(artifactsDir, "updates"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating artifacts dir %s: %w", d, err)
		}
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// slug turns a call label such as "triage docs/api.md" into a file name stem.
func slug(label string) string {
	s := unsafeChars.ReplaceAllString(strings.TrimSpace(label), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "call"
	}
	return s
}

// PromptPath returns the path for the seq-th rendered prompt.
func PromptPath(artifactsDir string, seq int, label string) string {
	return filepath.Join(artifactsDir, "prompts", fmt.Sprintf("%03d-%s.md", seq, slug(label)))
}

// ResponsePath returns the path for the seq-th raw model response.
func ResponsePath(artifactsDir string, seq int, label string) string {
	return filepath.Join(artifactsDir, "responses", fmt.Sprintf("%03d-%s.txt", seq, slug(label)))
}

// WriteUpdates saves every accepted replacement under updates/, mirroring doc paths.
func WriteUpdates(artifactsDir string, updates map[string]string) error {
	for p, content := range updates {
		dst := filepath.Join(artifactsDir, "updates", filepath.FromSlash(strings.TrimPrefix(p, "/")))
		if !strings.HasPrefix(dst, filepath.Join(artifactsDir, "updates")+string(filepath.Separator)) {
			return fmt.Errorf("refusing to write update outside artifacts dir: %s", p)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := writeFileAtomic(dst, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
