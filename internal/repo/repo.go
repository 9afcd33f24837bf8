package repo

import (
	"fmt"
	"strings"
)

// Repo identifies a hosted repository as owner/name.
type Repo struct {
	Owner string
	Name  string
}

// Parse splits an "owner/name" identifier.
func Parse(s string) (Repo, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("invalid repository %q (want owner/name)", s)
	}
	return Repo{Owner: owner, Name: name}, nil
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}
