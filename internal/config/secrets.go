package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingSecrets is returned when a required token is not set.
var ErrMissingSecrets = errors.New("missing secrets")

type Secrets struct {
	GitHubToken string
	ModelAPIKey string
}

// LoadSecrets reads GH_TOKEN (falling back to GITHUB_TOKEN) and OPENAI_API_KEY.
func LoadSecrets(getenv func(string) string) (Secrets, error) {
	s := Secrets{
		GitHubToken: getenv("GH_TOKEN"),
		ModelAPIKey: getenv("OPENAI_API_KEY"),
	}
	if s.GitHubToken == "" {
		s.GitHubToken = getenv("GITHUB_TOKEN")
	}

	var missing []string
	if s.GitHubToken == "" {
		missing = append(missing, "GH_TOKEN")
	}
	if s.ModelAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return s, fmt.Errorf("%w: set %s", ErrMissingSecrets, strings.Join(missing, " and "))
	}
	return s, nil
}
