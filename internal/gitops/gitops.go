// Package gitops records repo changes as git commits by shelling out to git.
package gitops

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned by Commit when the staged tree is unchanged.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author is used as both author and committer.
type Author struct {
	Name  string
	Email string
}

func (a Author) env() []string {
	return append(os.Environ(),
		"GIT_AUTHOR_NAME="+a.Name,
		"GIT_AUTHOR_EMAIL="+a.Email,
		"GIT_COMMITTER_NAME="+a.Name,
		"GIT_COMMITTER_EMAIL="+a.Email,
	)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := git(dir, nil, "init", "-q"); err != nil {
		return err
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Commit stages paths (everything when none are given) and commits them.
// It returns the short hash of the new commit.
func Commit(dir, message string, author Author, paths ...string) (string, error) {
	add := []string{"add", "-A", "--"}
	if len(paths) == 0 {
		add = append(add, ".")
	} else {
		add = append(add, paths...)
	}
	if _, err := git(dir, nil, add...); err != nil {
		return "", err
	}

	// diff --cached --quiet exits 1 when something is staged.
	if _, err := git(dir, nil, "diff", "--cached", "--quiet"); err == nil {
		return "", ErrNothingToCommit
	}

	if _, err := git(dir, author.env(), "commit", "-q", "-m", message); err != nil {
		return "", err
	}

	out, err := git(dir, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func git(dir string, env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}
