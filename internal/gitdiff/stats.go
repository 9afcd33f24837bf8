package gitdiff

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// Stats summarizes a unified diff.
type Stats struct {
	Files   []string
	Added   int
	Deleted int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d files, +%d -%d", len(s.Files), s.Added, s.Deleted)
}

// ComputeStats parses text as a multi-file unified diff. Unparseable input
// yields zero stats; the diff itself is still used as-is.
func ComputeStats(text string) Stats {
	var s Stats
	if strings.TrimSpace(text) == "" {
		return s
	}
	fileDiffs, err := diff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		slog.Debug("diff stats unavailable", "error", err)
		return s
	}
	for _, fd := range fileDiffs {
		s.Files = append(s.Files, fileName(fd))
		st := fd.Stat()
		s.Added += int(st.Added + st.Changed)
		s.Deleted += int(st.Deleted + st.Changed)
	}
	return s
}

func fileName(fd *diff.FileDiff) string {
	name := fd.NewName
	if name == "" || name == "/dev/null" {
		name = fd.OrigName
	}
	for _, p := range []string{"a/", "b/"} {
		if strings.HasPrefix(name, p) {
			return name[len(p):]
		}
	}
	return name
}
