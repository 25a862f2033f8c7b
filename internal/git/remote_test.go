package git_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/waabox/buildboard/internal/git"
)

func TestParseRemoteURL_HTTPS(t *testing.T) {
	url := "https://github.com/oracle/helidon.git"
	repo, err := git.ParseRemoteURL(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Host != "github.com" {
		t.Errorf("expected host 'github.com', got '%s'", repo.Host)
	}
	if repo.Owner != "oracle" {
		t.Errorf("expected owner 'oracle', got '%s'", repo.Owner)
	}
	if repo.Name != "helidon" {
		t.Errorf("expected name 'helidon', got '%s'", repo.Name)
	}
	if repo.RemoteURL != url {
		t.Errorf("expected remoteURL '%s', got '%s'", url, repo.RemoteURL)
	}
}

func TestParseRemoteURL_SCPStyleSSH(t *testing.T) {
	repo, err := git.ParseRemoteURL("git@github.com:oracle/helidon.git")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Host != "github.com" || repo.Owner != "oracle" || repo.Name != "helidon" {
		t.Errorf("unexpected repository: %+v", repo)
	}
}

func TestParseRemoteURL_SSHSchemeWithPort(t *testing.T) {
	repo, err := git.ParseRemoteURL("ssh://git@git.example.com:2222/team/build.git")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Host != "git.example.com" || repo.Owner != "team" || repo.Name != "build" {
		t.Errorf("unexpected repository: %+v", repo)
	}
}

func TestParseRemoteURL_NestedGroups(t *testing.T) {
	repo, err := git.ParseRemoteURL("https://gitlab.com/group/sub/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Owner != "group/sub" || repo.Name != "project" {
		t.Errorf("unexpected repository: %+v", repo)
	}
}

func TestParseRemoteURL_Invalid(t *testing.T) {
	for _, url := range []string{"not-a-url", "https://github.com/onlyowner", "https://github.com/"} {
		if _, err := git.ParseRemoteURL(url); err == nil {
			t.Errorf("expected error for %q, got nil", url)
		}
	}
}

func writeGitConfig(t *testing.T, dir, content string) {
	t.Helper()
	gitDir := filepath.Join(dir, ".git")
	if err := os.Mkdir(gitDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const originConfig = `[core]
	repositoryformatversion = 0
[remote "upstream"]
	url = https://github.com/someone/else.git
[remote "origin"]
	url = https://github.com/oracle/helidon.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`

func TestDetectRepository_ReadsOrigin(t *testing.T) {
	dir := t.TempDir()
	writeGitConfig(t, dir, originConfig)

	repo, err := git.DetectRepository(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Owner != "oracle" || repo.Name != "helidon" {
		t.Errorf("expected oracle/helidon, got %s", repo.Slug())
	}
}

func TestDetectRepository_WalksUp(t *testing.T) {
	dir := t.TempDir()
	writeGitConfig(t, dir, originConfig)
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	repo, err := git.DetectRepository(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Name != "helidon" {
		t.Errorf("expected helidon, got '%s'", repo.Name)
	}
}

func TestDetectRepository_NoOrigin(t *testing.T) {
	dir := t.TempDir()
	writeGitConfig(t, dir, "[core]\n\tbare = false\n")

	if _, err := git.DetectRepository(dir); err == nil {
		t.Fatal("expected error when origin is missing")
	}
}

func TestDetectRepository_OutsideRepository(t *testing.T) {
	// t.TempDir lives under the system temp dir, which is not a repository.
	_, err := git.DetectRepository(t.TempDir())
	if !errors.Is(err, git.ErrNoRepository) {
		t.Fatalf("expected ErrNoRepository, got %v", err)
	}
}
