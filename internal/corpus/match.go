package corpus

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher selects documentation files by glob. Include patterns pick markup
// documents; config patterns additionally admit navigation/sidebar config files.
type Matcher struct {
	include []string
	config  []string
}

func NewMatcher(include, configFiles []string) *Matcher {
	return &Matcher{include: include, config: configFiles}
}

// Match reports whether path belongs in the corpus.
func (m *Matcher) Match(path string) bool {
	return matchAny(m.include, path) || matchAny(m.config, path)
}

// IsConfigFile reports whether path was admitted as a configuration file.
func (m *Matcher) IsConfigFile(path string) bool {
	return !matchAny(m.include, path) && matchAny(m.config, path)
}

func matchAny(patterns []string, path string) bool {
	path = strings.TrimPrefix(path, "/")
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
