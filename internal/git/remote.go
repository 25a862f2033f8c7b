package git

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/waabox/buildboard/internal/domain"
)

// ErrNoRepository is returned when no .git directory is found above dir.
var ErrNoRepository = errors.New("not inside a git repository")

// DetectRepository walks up from dir until it finds a .git/config and
// returns a Repository built from its origin remote URL.
func DetectRepository(dir string) (domain.Repository, error) {
	configPath, err := findGitConfig(dir)
	if err != nil {
		return domain.Repository{}, err
	}
	f, err := os.Open(configPath)
	if err != nil {
		return domain.Repository{}, fmt.Errorf("could not open %s: %w", configPath, err)
	}
	defer f.Close()

	var inOrigin bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inOrigin = line == `[remote "origin"]`
			continue
		}
		if !inOrigin {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(key) == "url" {
			return ParseRemoteURL(strings.TrimSpace(value))
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.Repository{}, fmt.Errorf("reading %s: %w", configPath, err)
	}
	return domain.Repository{}, errors.New("no origin remote found in .git/config")
}

func findGitConfig(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(abs, ".git", "config")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoRepository
		}
		abs = parent
	}
}

// ParseRemoteURL parses a git remote URL into a Repository.
// Supports HTTPS (https://host/owner/repo.git), scp-like SSH
// (git@host:owner/repo.git) and ssh://git@host/owner/repo.git.
// Nested groups stay in Owner, so gitlab.com/a/b/c yields owner "a/b".
func ParseRemoteURL(rawURL string) (domain.Repository, error) {
	normalized := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	normalized = strings.TrimSuffix(normalized, ".git")

	var host, path string
	switch {
	case strings.HasPrefix(normalized, "https://"), strings.HasPrefix(normalized, "http://"),
		strings.HasPrefix(normalized, "ssh://"):
		_, rest, _ := strings.Cut(normalized, "://")
		host, path, _ = strings.Cut(rest, "/")
		if _, h, ok := strings.Cut(host, "@"); ok {
			host = h
		}
		if h, _, ok := strings.Cut(host, ":"); ok {
			host = h
		}
	case strings.Contains(normalized, "@") && strings.Contains(normalized, ":"):
		_, rest, _ := strings.Cut(normalized, "@")
		host, path, _ = strings.Cut(rest, ":")
	default:
		return domain.Repository{}, fmt.Errorf("unsupported remote URL format: %s", rawURL)
	}

	i := strings.LastIndex(path, "/")
	if host == "" || i <= 0 || i == len(path)-1 {
		return domain.Repository{}, fmt.Errorf("invalid remote URL: %s", rawURL)
	}
	return domain.Repository{
		Host:      strings.ToLower(host),
		Owner:     path[:i],
		Name:      path[i+1:],
		RemoteURL: rawURL,
	}, nil
}
