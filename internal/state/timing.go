package state

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"time"
)

// StageTiming is the wall-clock span of one pipeline stage.
type StageTiming struct {
	Stage      string    `json:"stage"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
}

// Timing records stage durations for one run. Safe for concurrent use.
type Timing struct {
	mu     sync.Mutex
	Stages []StageTiming `json:"stages"`
}

// AddStart opens a span for stage.
func (t *Timing) AddStart(stage string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Stages = append(t.Stages, StageTiming{Stage: stage, Start: time.Now()})
}

// AddEnd closes the most recent open span of stage and returns its length.
// It returns 0 when stage has no open span.
func (t *Timing) AddEnd(stage string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.Stages) - 1; i >= 0; i-- {
		s := &t.Stages[i]
		if s.Stage != stage || !s.End.IsZero() {
			continue
		}
		s.End = time.Now()
		d := s.End.Sub(s.Start)
		s.DurationMS = d.Milliseconds()
		return d
	}
	return 0
}

// Total is the span from the first start to the last recorded end.
func (t *Timing) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.Stages) == 0 {
		return 0
	}
	var last time.Time
	for _, s := range t.Stages {
		if s.End.After(last) {
			last = s.End
		}
	}
	if last.IsZero() {
		return 0
	}
	return last.Sub(t.Stages[0].Start)
}

// Flush writes timing.json into artifactsDir.
func (t *Timing) Flush(artifactsDir string) error {
	t.mu.Lock()
	data, err := json.MarshalIndent(t, "", "  ")
	t.mu.Unlock()
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(artifactsDir, "timing.json"), data, 0644)
}
