package domain

import "strings"

// Repository is the git repository the dashboard was started in.
type Repository struct {
	Host      string
	Owner     string
	Name      string
	RemoteURL string
}

// Slug returns "owner/name".
func (r Repository) Slug() string {
	return r.Owner + "/" + r.Name
}

// Matches reports whether a pipeline's repository URL points at r, in
// either HTTPS or SSH form. A zero Repository matches everything.
func (r Repository) Matches(repositoryURL string) bool {
	if r.Name == "" {
		return true
	}
	u := strings.ToLower(strings.TrimSuffix(repositoryURL, ".git"))
	slug := strings.ToLower(r.Slug())
	return strings.HasSuffix(u, "/"+slug) || strings.HasSuffix(u, ":"+slug)
}
