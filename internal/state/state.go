package state

import (
	"encoding/json"
	"path/filepath"
	"time"
)

// Summary is the run.json record written at the end of a run.
type Summary struct {
	RunID       string    `json:"run_id"`
	SourceRepo  string    `json:"source_repo"`
	SourcePR    int       `json:"source_pr"`
	DocRepo     string    `json:"doc_repo"`
	Outcome     string    `json:"outcome"`
	Error       string    `json:"error,omitempty"`
	DiffChars   int       `json:"diff_chars"`
	Documents   int       `json:"documents"`
	Flagged     []string  `json:"flagged,omitempty"`
	Updated     []string  `json:"updated,omitempty"`
	Branch      string    `json:"branch,omitempty"`
	PullRequest string    `json:"pull_request,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	FinishedAt  time.Time `json:"finished_at"`
}

func summaryPath(artifactsDir string) string {
	return filepath.Join(artifactsDir, "run.json")
}

// Save writes the summary to the artifacts directory.
func (s *Summary) Save(artifactsDir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(summaryPath(artifactsDir), data, 0644)
}
