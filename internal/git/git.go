// Package git reads the medicine catalogue's history from git.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/storage"
)

// ErrNotGitRepo indicates the directory is not a git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// ErrCommitNotFound indicates the specified commit does not exist.
var ErrCommitNotFound = errors.New("commit not found")

// FindRepoRoot finds the root of the git repository containing the given path.
// Returns ErrNotGitRepo if not in a git repository.
func FindRepoRoot(path string) (string, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", ErrNotGitRepo
	}
	return strings.TrimSpace(string(output)), nil
}

// ValidateCommit verifies that a commit reference exists.
// Supports SHA, HEAD, HEAD~N, branch names, tags, etc.
// Returns the resolved full SHA or ErrCommitNotFound.
func ValidateCommit(gitRoot, commitRef string) (string, error) {
	cmd := exec.Command("git", "-C", gitRoot, "rev-parse", "--verify", commitRef+"^{commit}")
	output, err := cmd.Output()
	if err != nil {
		return "", ErrCommitNotFound
	}
	return strings.TrimSpace(string(output)), nil
}

// RelPath returns path relative to the git root in git's slash form.
func RelPath(gitRoot, path string) (string, error) {
	// Resolve symlinks on both sides so that /tmp vs /private/tmp agree.
	root, err := filepath.EvalSymlinks(gitRoot)
	if err != nil {
		root = gitRoot
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		dir = filepath.Dir(path)
	}
	rel, err := filepath.Rel(root, filepath.Join(dir, filepath.Base(path)))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside git repository %s", path, gitRoot)
	}
	return filepath.ToSlash(rel), nil
}

// IsFileTracked reports whether relPath is tracked by git.
func IsFileTracked(gitRoot, relPath string) bool {
	cmd := exec.Command("git", "-C", gitRoot, "ls-files", "--error-unmatch", relPath)
	return cmd.Run() == nil
}

// MedicinesAtCommit reads the catalogue at relPath as of a commit.
// A catalogue that did not exist at that commit is empty.
func MedicinesAtCommit(gitRoot, commitRef, relPath string) ([]medicine.Medicine, error) {
	sha, err := ValidateCommit(gitRoot, commitRef)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("git", "-C", gitRoot, "show", sha+":"+relPath)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return []medicine.Medicine{}, nil
		}
		return nil, fmt.Errorf("reading %s at %s: %w", relPath, commitRef, err)
	}

	meds, err := storage.DecodeJSONL(bytes.NewReader(output))
	if err != nil {
		return nil, fmt.Errorf("%s at %s: %w", relPath, commitRef, err)
	}
	return meds, nil
}
